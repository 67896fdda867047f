package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/venntower/pkg/pipeline"
)

var (
	browserTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browserLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	browserDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	browserBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

type phase int

const (
	phaseDecompose phase = iota
	phaseRecompose
)

func (p phase) String() string {
	if p == phaseDecompose {
		return "Decomposition"
	}
	return "Recomposition"
}

// stepModel is the bubbletea model behind run --interactive. It pages
// through the decomposition and recomposition steps of one result.
type stepModel struct {
	res    *pipeline.Result
	phase  phase
	cursor int
}

func newStepModel(res *pipeline.Result) stepModel {
	return stepModel{res: res, phase: phaseRecompose}
}

func (m stepModel) count() int {
	if m.phase == phaseDecompose {
		return len(m.res.Decomposition)
	}
	return len(m.res.Recomposition)
}

func (m stepModel) Init() tea.Cmd {
	return nil
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h", "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l", "down", "j":
		if m.cursor < m.count()-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(m.count()-1, 0)
	case "tab":
		m.phase = 1 - m.phase
		m.cursor = min(m.cursor, max(m.count()-1, 0))
	}
	return m, nil
}

func (m stepModel) View() string {
	var b strings.Builder

	b.WriteString(browserTitleStyle.Render(m.res.Description.Sentence()))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render("←/→ step  tab decompose/recompose  q quit"))
	b.WriteString("\n\n")

	if m.count() == 0 {
		b.WriteString(browserDimStyle.Render("  no steps: the description has no curves"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s step %d/%d\n", m.phase, m.cursor+1, m.count()))
	b.WriteString(browserBoxStyle.Render(m.stepBody()))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render(fmt.Sprintf("  checksum %.6f", m.checksum())))
	b.WriteString("\n")
	return b.String()
}

func (m stepModel) stepBody() string {
	var b strings.Builder
	if m.phase == phaseDecompose {
		s := m.res.Decomposition[m.cursor]
		fmt.Fprintf(&b, "remove %s\n", browserLabelStyle.Render(s.Removed.String()))
		fmt.Fprintf(&b, "from  %s\n", s.From.Sentence())
		fmt.Fprintf(&b, "to    %s", s.To.Sentence())
		for _, mv := range s.Moved {
			fmt.Fprintf(&b, "\n  %s %s %s", mv.Old, iconArrow, mv.New)
		}
		return b.String()
	}

	s := m.res.Recomposition[m.cursor]
	fmt.Fprintf(&b, "add %s as %d curve(s)\n", browserLabelStyle.Render(s.Label().String()), len(s.Added))
	fmt.Fprintf(&b, "from  %s\n", s.From.Sentence())
	fmt.Fprintf(&b, "to    %s", s.To.Sentence())
	for _, data := range s.Added {
		fmt.Fprintf(&b, "\n  curve %d splits %s %s %s", data.Curve.ID(), zoneList(data.Split), iconArrow, zoneList(data.Added))
	}
	return b.String()
}

func (m stepModel) checksum() float64 {
	if m.phase == phaseDecompose {
		return m.res.Stats.DecompositionChecksum
	}
	return m.res.Checksum
}

// browseSteps runs the step browser until the user quits.
func browseSteps(ctx context.Context, res *pipeline.Result) error {
	_, err := tea.NewProgram(newStepModel(res), tea.WithContext(ctx)).Run()
	return err
}
