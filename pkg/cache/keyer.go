package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// RunKeyOpts holds the options that change a pipeline result.
type RunKeyOpts struct {
	Decomposition string `json:"decomposition"`
	Recomposition string `json:"recomposition"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer builds cache keys.
type Keyer interface {
	// RunKey identifies the pipeline result for a description.
	RunKey(descriptionHash string, opts RunKeyOpts) string
	// ArtifactKey identifies one rendering of a pipeline result.
	ArtifactKey(runHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RunKey implements Keyer.
func (DefaultKeyer) RunKey(descriptionHash string, opts RunKeyOpts) string {
	return hashKey("run", descriptionHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(runHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", runHash, opts)
}

// Hash returns the hex SHA-256 of data. Pipeline descriptions are hashed over
// their canonical JSON, so equal hashes mean equal descriptions.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "kind:<hash>" over the JSON encoding of parts.
func hashKey(kind string, parts ...any) string {
	// Key parts are strings and flat option structs, which always marshal.
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
