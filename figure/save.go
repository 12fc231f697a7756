// Package figure creates and saves reproducible figure bundles: the
// rendered artifact, the data it was drawn from, and a self-contained
// generated program that re-creates the artifact from the persisted data
// alone.
package figure

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"reprofig/internal/analysis"
	"reprofig/internal/bundle"
	"reprofig/internal/script"
	"reprofig/internal/source"
	"reprofig/render"
	"reprofig/table"
)

// CreateFunc builds a figure from one table. Returning nil is allowed;
// the ambient current figure is saved instead.
type CreateFunc func(data *table.Table) *render.Figure

// CreateFramesFunc builds a figure from several tables.
type CreateFramesFunc func(data []*table.Table) *render.Figure

// Saver orchestrates saves. The zero value is not usable; construct with
// NewSaver. A single Saver may serve many saves; the per-save resolution
// state is never shared between them.
type Saver struct {
	Loader     *analysis.Loader
	Formatter  *script.Formatter
	Normalizer script.Normalizer
}

// NewSaver creates a Saver with the default loader, formatter, and script
// normalizer.
func NewSaver() *Saver {
	return &Saver{
		Loader:     analysis.NewLoader(),
		Formatter:  script.NewFormatter(),
		Normalizer: script.NewScriptNormalizer(),
	}
}

var defaultSaver = NewSaver()

// Save creates the bundle for one figure: data.csv, the rendered
// artifact, and the generated reproduction script.
//
// Directory creation and data serialization failures are fatal — without
// them the bundle would be a lie. Everything after (artifact save, script
// write, formatting, manifest) is best-effort: failures are reported to
// the warn writer and the save continues.
func Save(name string, data *table.Table, create CreateFunc, opts ...Option) error {
	return defaultSaver.Save(name, data, create, opts...)
}

// SaveFrames is Save for figures drawn from several tables, persisted as
// data_0.csv, data_1.csv, ... and re-read in sorted order.
func SaveFrames(name string, frames []*table.Table, create CreateFramesFunc, opts ...Option) error {
	return defaultSaver.SaveFrames(name, frames, create, opts...)
}

// Save creates a single-table bundle.
func (s *Saver) Save(name string, data *table.Table, create CreateFunc, opts ...Option) error {
	if create == nil {
		return fmt.Errorf("save %q: create function is nil", name)
	}
	if data == nil {
		return fmt.Errorf("save %q: data is nil", name)
	}
	return s.save(name, []*table.Table{data}, false, create,
		func() *render.Figure { return create(data) }, opts)
}

// SaveFrames creates a multi-frame bundle.
func (s *Saver) SaveFrames(name string, frames []*table.Table, create CreateFramesFunc, opts ...Option) error {
	if create == nil {
		return fmt.Errorf("save %q: create function is nil", name)
	}
	if len(frames) == 0 {
		return fmt.Errorf("save %q: no data frames", name)
	}
	return s.save(name, frames, true, create,
		func() *render.Figure { return create(frames) }, opts)
}

func (s *Saver) save(name string, frames []*table.Table, multi bool, fn any, invoke func() *render.Figure, opts []Option) error {
	ctx := context.Background()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	format := o.format()
	layout := bundle.Layout{Root: o.OutputRoot, Name: name}

	warnf := func(msg string, args ...any) {
		if o.Warn != nil {
			fmt.Fprintf(o.Warn, "reprofig: "+msg+"\n", args...)
		}
	}

	// Prerequisites: the directory and the data. These propagate.
	if err := os.MkdirAll(layout.Dir(), 0755); err != nil {
		return fmt.Errorf("save %q: create bundle dir: %w", name, err)
	}
	if multi {
		for i, frame := range frames {
			if err := table.WriteFile(layout.FrameFile(i), frame, o.SaveIndex); err != nil {
				return fmt.Errorf("save %q: %w", name, err)
			}
		}
	} else {
		if err := table.WriteFile(layout.DataFile(), frames[0], o.SaveIndex); err != nil {
			return fmt.Errorf("save %q: %w", name, err)
		}
	}

	// Render the artifact.
	render.SetBackend(o.Backend)
	fig := invoke()
	if fig == nil {
		fig = render.Current()
	}
	artifact := layout.ArtifactFile(format)
	if fig == nil {
		warnf("save %q: create function produced no figure", name)
	} else if err := fig.Save(artifact, render.SaveOptions{Format: format, DPI: o.DPI}); err != nil {
		warnf("save %q: save artifact: %v", name, err)
	}

	if o.Show {
		s.show(ctx, artifact, warnf)
	} else {
		render.CloseAll()
	}

	// Resolve and render the reproduction script.
	text := s.buildScript(name, layout, format, multi, fn, o, warnf)
	scriptWritten := false
	if err := bundle.WriteFileAtomic(layout.ScriptFile(), []byte(text), 0644); err != nil {
		warnf("save %q: write script: %v", name, err)
	} else {
		scriptWritten = true
	}

	if o.AutoFormat && scriptWritten {
		if err := s.Formatter.Format(ctx, layout.ScriptFile()); err != nil {
			warnf("save %q: %v", name, err)
		}
	}

	s.writeManifest(layout, format, warnf)
	return nil
}

// buildScript runs resolution and source building for the target and any
// additional functions, then assembles the script text. Resolution misses
// are reported as warnings and never abort the save: the escape hatch for
// them is AdditionalImports and AdditionalFuncs.
func (s *Saver) buildScript(name string, layout bundle.Layout, format string, multi bool, fn any, o Options, warnf func(string, ...any)) string {
	classifier := analysis.NewClassifier()
	resolver := analysis.NewResolver(classifier)
	builder := source.NewBuilder(classifier)
	builder.RenderAllTypeDeps(o.RenderAllTypeDeps)

	importSets := [][]string{defaultImportLines()}

	targetName := "createFigure"
	targetFragment := ""
	if tgt, err := analysis.TargetOf(fn); err != nil {
		warnf("save %q: cannot locate create function: %v", name, err)
	} else {
		targetName = tgt.Name
		lines, frag, err := s.analyze(resolver, builder, tgt)
		if err != nil {
			warnf("save %q: resolve %s: %v", name, tgt.Name, err)
		} else {
			importSets = append(importSets, lines)
			targetFragment = frag
		}
	}

	var additionalFragments []string
	for _, extra := range o.AdditionalFuncs {
		tgt, err := analysis.TargetOf(extra)
		if err != nil {
			warnf("save %q: cannot locate additional function: %v", name, err)
			continue
		}
		lines, frag, err := s.analyze(resolver, builder, tgt)
		if err != nil {
			warnf("save %q: resolve %s: %v", name, tgt.Name, err)
			continue
		}
		importSets = append(importSets, lines)
		if frag != "" {
			additionalFragments = append(additionalFragments, frag)
		}
	}

	var userLines []string
	for _, decl := range o.AdditionalImports {
		if line := normalizeImportLine(decl); line != "" {
			userLines = append(userLines, line)
		}
	}
	importSets = append(importSets, userLines)

	if skipped := resolver.Trace.Skipped(); len(skipped) > 0 {
		warnf("save %q: unresolved references (add imports manually if needed): %v", name, skipped)
	}

	text := script.Assemble(script.Config{
		FigureName:          name,
		OutputDir:           filepath.ToSlash(filepath.Join(o.OutputRoot, name)),
		Backend:             o.Backend,
		Format:              format,
		DPI:                 o.DPI,
		Frames:              multi,
		TargetName:          targetName,
		Imports:             analysis.MergeImports(importSets...),
		AdditionalFragments: additionalFragments,
		TargetFragment:      targetFragment,
	})
	if s.Normalizer != nil {
		text = s.Normalizer.Normalize(text)
	}
	return text
}

// analyze resolves and renders one located function.
func (s *Saver) analyze(resolver *analysis.Resolver, builder *source.Builder, tgt analysis.Target) ([]string, string, error) {
	unit, err := s.Loader.Load(tgt.Dir)
	if err != nil {
		return nil, "", err
	}
	sym, ok := unit.Lookup(tgt.Name)
	if !ok {
		return nil, "", fmt.Errorf("%q not declared at top level of %s", tgt.Name, unit.Dir)
	}

	lines := resolver.Resolve(sym, unit)
	frag, err := builder.Render(sym)
	if err != nil {
		return nil, "", err
	}
	return lines, frag, nil
}

// show opens the artifact in the platform viewer, fire-and-forget.
func (s *Saver) show(ctx context.Context, artifact string, warnf func(string, ...any)) {
	cmd := exec.CommandContext(ctx, "xdg-open", artifact)
	if err := cmd.Start(); err != nil {
		warnf("show %q: %v", artifact, err)
		return
	}
	// The viewer outlives the save; don't hold the process.
	go func() { _ = cmd.Wait() }()
}

// writeManifest hashes whatever bundle files exist and persists the
// manifest, best-effort.
func (s *Saver) writeManifest(layout bundle.Layout, format string, warnf func(string, ...any)) {
	var rel []string
	dataFiles, err := bundle.DataFiles(layout)
	if err == nil {
		for _, df := range dataFiles {
			rel = append(rel, filepath.Base(df))
		}
	}
	for _, p := range []string{layout.ScriptFile(), layout.ArtifactFile(format)} {
		if _, err := os.Stat(p); err == nil {
			rel = append(rel, filepath.Base(p))
		}
	}

	m, err := bundle.BuildManifest(layout, rel)
	if err != nil {
		warnf("manifest for %q: %v", layout.Name, err)
		return
	}
	if err := m.Write(layout.ManifestFile()); err != nil {
		warnf("manifest for %q: %v", layout.Name, err)
	}
}

// defaultImportLines are always present: the collaborator packages the
// entry point uses, plus the stdlib needs of the footer.
func defaultImportLines() []string {
	return []string{
		`"fmt"`,
		`"os"`,
		`"reprofig/render"`,
		`"reprofig/table"`,
	}
}
