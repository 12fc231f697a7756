// Package script assembles generated reproduction programs: sorted
// imports, a backend selection, embedded source fragments, and a fixed
// entry point that re-reads the persisted data and re-saves the figure.
package script

import (
	"fmt"
	"strings"
)

// Config describes one reproduction script.
type Config struct {
	// FigureName is the bundle's figure name.
	FigureName string

	// OutputDir is the bundle directory as referenced from inside the
	// script, slash-separated (e.g. "figures/test_fig").
	OutputDir string

	// Backend is the rendering backend selected at the top of the script.
	Backend string

	// Format is the artifact file extension.
	Format string

	// DPI is the save resolution baked into the entry point.
	DPI int

	// Frames selects the multi-frame data layout (data_*.csv, read back
	// in sorted order) instead of the single data.csv.
	Frames bool

	// TargetName is the figure-creation function invoked by the entry
	// point.
	TargetName string

	// Imports are the final import-block lines, already deduplicated
	// and sorted.
	Imports []string

	// AdditionalFragments are embedded before the target fragment,
	// in caller order.
	AdditionalFragments []string

	// TargetFragment is the target function's rendered source, with its
	// hoisted local dependencies.
	TargetFragment string
}

// Assemble renders the complete script text. The section order is fixed:
// imports, backend selection, additional fragments, target fragment,
// entry point, invocation footer.
func Assemble(cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by reprofig. Reproduces figure %q from its saved data.\n", cfg.FigureName)
	b.WriteString("// Run directly: go run code.go\n")
	b.WriteString("package main\n\n")

	if len(cfg.Imports) > 0 {
		b.WriteString("import (\n")
		for _, line := range cfg.Imports {
			b.WriteString("\t" + line + "\n")
		}
		b.WriteString(")\n\n")
	}

	fmt.Fprintf(&b, "func init() {\n\trender.SetBackend(%q)\n}\n\n", cfg.Backend)

	for _, frag := range cfg.AdditionalFragments {
		b.WriteString(frag)
		b.WriteString("\n\n")
	}

	if cfg.TargetFragment != "" {
		b.WriteString(cfg.TargetFragment)
		b.WriteString("\n\n")
	}

	b.WriteString(entryPoint(cfg))
	b.WriteString("\n")
	b.WriteString(footer)

	return b.String()
}

// entryPoint renders reproduceFigure: read the persisted data, invoke the
// target, re-save to the identical path, format, and resolution.
func entryPoint(cfg Config) string {
	var b strings.Builder

	b.WriteString("func reproduceFigure() error {\n")
	if cfg.Frames {
		fmt.Fprintf(&b, "\tdata, err := table.ReadFrames(%q)\n", cfg.OutputDir+"/data_*.csv")
	} else {
		fmt.Fprintf(&b, "\tdata, err := table.ReadCSV(%q)\n", cfg.OutputDir+"/data.csv")
	}
	b.WriteString("\tif err != nil {\n\t\treturn fmt.Errorf(\"read data: %w\", err)\n\t}\n")
	fmt.Fprintf(&b, "\tfig := %s(data)\n", cfg.TargetName)
	b.WriteString("\tif fig == nil {\n\t\tfig = render.Current()\n\t}\n")
	b.WriteString("\tif fig == nil {\n\t\treturn fmt.Errorf(\"no figure produced\")\n\t}\n")
	fmt.Fprintf(&b, "\treturn fig.Save(\n\t\t%q,\n\t\trender.SaveOptions{Format: %q, DPI: %d},\n\t)\n",
		artifactPath(cfg), cfg.Format, cfg.DPI)
	b.WriteString("}\n")

	return b.String()
}

func artifactPath(cfg Config) string {
	return cfg.OutputDir + "/" + cfg.FigureName + "." + cfg.Format
}

// footer is the guarded direct-invocation block: exit 0 on success,
// non-zero otherwise.
const footer = `func main() {
	if err := reproduceFigure(); err != nil {
		fmt.Fprintln(os.Stderr, "reproduce figure:", err)
		os.Exit(1)
	}
}
`
