package script

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Formatter invokes the external autoformatter on a generated script.
// Formatting is cosmetic: the caller treats any failure here as a
// warning, never as a failed save.
type Formatter struct {
	// Bin is the formatter binary; empty means "gofmt".
	Bin string
}

// NewFormatter creates a Formatter using gofmt.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format rewrites the file at path in place. The subprocess is short-lived
// and inherits nothing but the arguments it needs.
func (f *Formatter) Format(ctx context.Context, path string) error {
	bin := f.Bin
	if bin == "" {
		bin = "gofmt"
	}

	cmd := exec.CommandContext(ctx, bin, "-w", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("autoformat %q with %s: %w: %s", path, bin, err, detail)
		}
		return fmt.Errorf("autoformat %q with %s: %w", path, bin, err)
	}
	return nil
}
