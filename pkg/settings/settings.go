// Package settings holds build metadata and the per-run options shared by
// the dirtab command and its packages.
package settings

// CliBinaryName is the canonical binary name.
const CliBinaryName = "dirtab"

// VersionInformation is set at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo describes the running build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// SourceKind says where the rows came from.
type SourceKind string

const (
	SourceGenerated SourceKind = "generated"
	SourceFile      SourceKind = "file"
	SourceDB        SourceKind = "db"
)

// Source identifies the row source for this run.
type Source struct {
	Kind SourceKind
	Path string
}

// Run holds the options for a single execution.
type Run struct {
	MinLogLevel int8
	Source      Source
	Interactive bool
	Watch       bool
	NoColor     bool
	LogFile     string
}

// NewCliParams returns the defaults used by the CLI.
func NewCliParams() *Run {
	return &Run{
		Source: Source{Kind: SourceGenerated},
	}
}

// CanWatch reports whether the source is a file that can be watched.
func (r *Run) CanWatch() bool {
	return r.Watch && r.Source.Kind == SourceFile && r.Source.Path != ""
}
