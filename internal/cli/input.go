package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/decompose"
	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
	vio "github.com/matzehuels/venntower/pkg/io"
	"github.com/matzehuels/venntower/pkg/pipeline"
	"github.com/matzehuels/venntower/pkg/recompose"
)

// inputOpts selects where a description is read from: a notation argument,
// a file, or stdin ("-").
type inputOpts struct {
	file   string
	format string
}

func (in *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", `description file (json, toml or notation), "-" for stdin`)
	cmd.Flags().StringVar(&in.format, "input-format", "", "description format: notation, json, toml (default: from extension)")
}

// source builds a pipeline source from a positional notation or the file flag.
func (in inputOpts) source(args []string, stdin io.Reader) (pipeline.Source, error) {
	switch {
	case len(args) > 0 && in.file != "":
		return pipeline.Source{}, errors.New(errors.ErrCodeInvalidInput, "pass either a notation or --file, not both")
	case len(args) > 0:
		return pipeline.Source{Notation: args[0]}, nil
	case in.file == "":
		return pipeline.Source{}, errors.New(errors.ErrCodeInvalidInput, `a notation such as "a b ab" or --file is required`)
	}

	format, err := vio.ParseFormat(in.format)
	if err != nil {
		return pipeline.Source{}, err
	}

	if in.file == "-" {
		data, err := io.ReadAll(io.LimitReader(stdin, errors.MaxNotationLength+1))
		if err != nil {
			return pipeline.Source{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return pipeline.Source{Data: data, Format: format}, nil
	}
	if in.format != "" {
		data, err := os.ReadFile(in.file)
		if err != nil {
			return pipeline.Source{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", in.file)
		}
		return pipeline.Source{Data: data, Format: format}, nil
	}
	return pipeline.Source{Path: in.file}, nil
}

// parse reads and parses the description named by args and flags.
func (in inputOpts) parse(cmd *cobra.Command, args []string) (*diagram.Description, error) {
	src, err := in.source(args, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	return pipeline.Parse(src)
}

// strategyOpts holds the strategy flags shared by every pipeline command.
type strategyOpts struct {
	decomposition string
	recomposition string
}

func (s *strategyOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.decomposition, "decomposition", "", "decomposition strategy (default from config, else pierced-first)")
	cmd.Flags().StringVar(&s.recomposition, "recomposition", "", "recomposition strategy (default from config, else doubly-pierced)")

	_ = cmd.RegisterFlagCompletionFunc("decomposition", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, st := range decompose.Strategies() {
			names = append(names, st.String()+"\t"+st.Description())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("recomposition", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, st := range recompose.Strategies() {
			names = append(names, st.String()+"\t"+st.Description())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// apply overrides the configured strategies with any flags given.
func (s strategyOpts) apply(opts *pipeline.Options) {
	if s.decomposition != "" {
		opts.Decomposition = s.decomposition
	}
	if s.recomposition != "" {
		opts.Recomposition = s.recomposition
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// binaryFormats cannot be written to a terminal.
var binaryFormats = map[string]bool{
	pipeline.FormatPNG: true,
	pipeline.FormatPDF: true,
}

// outputPaths maps each format to the file it is written to. An empty path
// means stdout. A single format goes to output as given; several formats
// share output as a base path with the format as extension.
func outputPaths(output string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if output == "" {
		for _, f := range formats {
			if binaryFormats[f] {
				return nil, errors.New(errors.ErrCodeInvalidInput, "format %s needs --output", f)
			}
			paths[f] = ""
		}
		return paths, nil
	}
	if len(formats) == 1 {
		paths[formats[0]] = output
		return paths, nil
	}
	base := output
	if ext := filepath.Ext(output); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(output, ext)
	}
	for _, f := range formats {
		paths[f] = fmt.Sprintf("%s.%s", base, f)
	}
	return paths, nil
}

// writeArtifacts writes artifacts in format order, to files or to w.
// It returns the files written.
func writeArtifacts(w io.Writer, artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	paths, err := outputPaths(output, formats)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, f := range formats {
		data := artifacts[f]
		path := paths[f]
		if path == "" {
			if _, err := w.Write(data); err != nil {
				return written, err
			}
			if len(data) > 0 && data[len(data)-1] != '\n' {
				fmt.Fprintln(w)
			}
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}
