package figure

import (
	"io"
	"os"
	"strings"
)

// Options configure one save. Zero values are filled by defaults: pdf
// backend, "figures" root, autoformatting on, 1000 DPI.
type Options struct {
	// SaveIndex includes a leading row-index column in the persisted
	// data.
	SaveIndex bool

	// Show opens the rendered artifact in a viewer instead of closing
	// the figure after saving.
	Show bool

	// Backend is the rendering backend identifier.
	Backend string

	// FileFormat is the artifact extension; empty means the backend.
	FileFormat string

	// OutputRoot is the figures root directory.
	OutputRoot string

	// AutoFormat runs the external formatter over the generated script.
	AutoFormat bool

	// DPI is the artifact resolution.
	DPI int

	// AdditionalImports are import declarations force-included in the
	// generated script, as a path ("math"), an aliased form
	// ("np example.com/numutil"), or an already-quoted line.
	AdditionalImports []string

	// AdditionalFuncs are functions whose source and dependencies are
	// embedded whether or not the target references them, e.g. to
	// preserve data-generation provenance.
	AdditionalFuncs []any

	// RenderAllTypeDeps renders every local type dependency found in a
	// globals pass instead of stopping at the first.
	RenderAllTypeDeps bool

	// Warn receives best-effort failure notices.
	Warn io.Writer
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Backend:    "pdf",
		OutputRoot: "figures",
		AutoFormat: true,
		DPI:        1000,
		Warn:       os.Stderr,
	}
}

// WithSaveIndex includes the row index in the persisted data.
func WithSaveIndex(on bool) Option {
	return func(o *Options) { o.SaveIndex = on }
}

// WithShow opens the artifact in a viewer after saving.
func WithShow(on bool) Option {
	return func(o *Options) { o.Show = on }
}

// WithBackend selects the rendering backend.
func WithBackend(name string) Option {
	return func(o *Options) { o.Backend = name }
}

// WithFileFormat overrides the artifact extension.
func WithFileFormat(format string) Option {
	return func(o *Options) { o.FileFormat = format }
}

// WithOutputRoot changes the figures root directory.
func WithOutputRoot(dir string) Option {
	return func(o *Options) { o.OutputRoot = dir }
}

// WithAutoFormat toggles external formatting of the generated script.
func WithAutoFormat(on bool) Option {
	return func(o *Options) { o.AutoFormat = on }
}

// WithDPI sets the artifact resolution.
func WithDPI(dpi int) Option {
	return func(o *Options) { o.DPI = dpi }
}

// WithAdditionalImports force-includes import declarations.
func WithAdditionalImports(imports ...string) Option {
	return func(o *Options) {
		o.AdditionalImports = append(o.AdditionalImports, imports...)
	}
}

// WithAdditionalFunctions embeds extra functions and their dependencies.
func WithAdditionalFunctions(fns ...any) Option {
	return func(o *Options) {
		o.AdditionalFuncs = append(o.AdditionalFuncs, fns...)
	}
}

// WithRenderAllTypeDeps enables the corrected type-dependency rendering
// mode.
func WithRenderAllTypeDeps(on bool) Option {
	return func(o *Options) { o.RenderAllTypeDeps = on }
}

// WithWarnWriter redirects best-effort failure notices.
func WithWarnWriter(w io.Writer) Option {
	return func(o *Options) { o.Warn = w }
}

func (o Options) format() string {
	if o.FileFormat != "" {
		return o.FileFormat
	}
	return o.Backend
}

// normalizeImportLine turns a user-supplied import declaration into the
// import-block line form used for deduplication.
func normalizeImportLine(decl string) string {
	decl = strings.TrimSpace(decl)
	decl = strings.TrimPrefix(decl, "import ")
	decl = strings.TrimSpace(decl)
	if decl == "" {
		return ""
	}
	if strings.Contains(decl, `"`) {
		return decl
	}
	if alias, path, ok := strings.Cut(decl, " "); ok {
		return alias + ` "` + strings.TrimSpace(path) + `"`
	}
	return `"` + decl + `"`
}
