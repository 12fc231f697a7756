// Package cli parses and executes reprofig command invocations. It keeps
// parsing separate from execution so exit-code mapping can be tested
// without touching the filesystem.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	ExitSuccess           = 0
	ExitBundleFailure     = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

// Command is a validated reprofig subcommand.
type Command string

const (
	// CommandVerify checks that a bundle is complete and unmodified.
	CommandVerify Command = "verify"

	// CommandRegen re-runs a bundle's generated script and checks that the
	// artifact was re-created.
	CommandRegen Command = "regen"

	// CommandFmt runs the formatter over a bundle's generated script.
	CommandFmt Command = "fmt"
)

// EnvFiguresDir and EnvGoBin override flag defaults. They are typically
// set through a .env file loaded at startup.
const (
	EnvFiguresDir = "REPROFIG_FIGURES_DIR"
	EnvGoBin      = "REPROFIG_GOBIN"
)

// Invocation is the fully canonicalized description of one command run.
// FiguresDir is cleaned; the figure name is validated to be a bare name,
// never a path.
type Invocation struct {
	Command    Command
	FiguresDir string
	Figure     string
	Format     string
	GoBin      string
	GofmtBin   string
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses args (excluding argv[0]) into a canonical
// Invocation. getenv supplies defaults for flags the caller did not set;
// pass nil to ignore the environment entirely.
func ParseInvocation(args []string, getenv func(string) string) (Invocation, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	if len(args) == 0 {
		return Invocation{}, invalidInvocationf("usage: reprofig <verify|regen|fmt> [flags] <figure>")
	}
	cmd, err := parseCommand(args[0])
	if err != nil {
		return Invocation{}, err
	}

	fs := flag.NewFlagSet("reprofig "+string(cmd), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	defaultDir := getenv(EnvFiguresDir)
	if defaultDir == "" {
		defaultDir = "figures"
	}
	defaultGo := getenv(EnvGoBin)
	if defaultGo == "" {
		defaultGo = "go"
	}

	var figuresDir string
	var format string
	var goBin string
	var gofmtBin string
	fs.StringVar(&figuresDir, "dir", defaultDir, "Figures root directory.")
	fs.StringVar(&format, "format", "pdf", "Artifact file format.")
	fs.StringVar(&goBin, "go", defaultGo, "Go binary used by regen.")
	fs.StringVar(&gofmtBin, "gofmt", "gofmt", "Formatter binary used by fmt.")

	if err := fs.Parse(args[1:]); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 1 {
		return Invocation{}, invalidInvocationf("expected exactly one figure name, got %q", strings.Join(fs.Args(), " "))
	}

	figure := fs.Arg(0)
	if figure == "" {
		return Invocation{}, invalidInvocationf("figure name must not be empty")
	}
	if figure != filepath.Base(figure) || figure == "." || figure == ".." {
		return Invocation{}, invalidInvocationf("figure name must be a bare name, not a path (got %q)", figure)
	}

	if strings.TrimSpace(figuresDir) == "" {
		return Invocation{}, invalidInvocationf("--dir must not be empty")
	}
	figuresDir = filepath.Clean(figuresDir)

	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if format == "" {
		return Invocation{}, invalidInvocationf("--format must not be empty")
	}

	return Invocation{
		Command:    cmd,
		FiguresDir: figuresDir,
		Figure:     figure,
		Format:     format,
		GoBin:      goBin,
		GofmtBin:   gofmtBin,
	}, nil
}

func parseCommand(raw string) (Command, error) {
	n := strings.ToLower(strings.TrimSpace(raw))
	switch Command(n) {
	case CommandVerify, CommandRegen, CommandFmt:
		return Command(n), nil
	case "":
		return "", invalidInvocationf("command is required")
	default:
		return "", invalidInvocationf("unknown command %q (expected verify|regen|fmt)", raw)
	}
}

// ExitCode extracts a semantic exit code from an error. Unknown errors
// map to ExitInternalError.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitInternalError
}
