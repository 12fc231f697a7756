package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"reprofig/internal/bundle"
	"reprofig/internal/script"
)

// Result carries the semantic exit code and any human-readable findings
// of one executed invocation.
type Result struct {
	ExitCode int
	Findings []string
}

// Execute runs a canonical invocation against the filesystem.
//
// Exit-code mapping:
//   - bundle problems (missing files, hash mismatches, a failed regen
//     run) map to ExitBundleFailure;
//   - an absent or unreadable bundle directory maps to ExitConfigError;
//   - panics map to ExitInternalError.
func Execute(ctx context.Context, inv Invocation) (res Result, execErr error) {
	res.ExitCode = ExitInternalError

	defer func() {
		if r := recover(); r != nil {
			res = Result{ExitCode: ExitInternalError}
			execErr = fmt.Errorf("panic: %v", r)
		}
	}()

	layout := bundle.Layout{Root: inv.FiguresDir, Name: inv.Figure}
	if info, err := os.Stat(layout.Dir()); err != nil {
		res.ExitCode = ExitConfigError
		return res, fmt.Errorf("bundle dir: %w", err)
	} else if !info.IsDir() {
		res.ExitCode = ExitConfigError
		return res, fmt.Errorf("bundle dir %q is not a directory", layout.Dir())
	}

	switch inv.Command {
	case CommandVerify:
		return executeVerify(layout, inv.Format)
	case CommandRegen:
		return executeRegen(ctx, layout, inv)
	case CommandFmt:
		return executeFmt(ctx, layout, inv.GofmtBin)
	default:
		return res, fmt.Errorf("unknown command %q", inv.Command)
	}
}

func executeVerify(layout bundle.Layout, format string) (Result, error) {
	var findings []string
	for _, err := range []error{
		bundle.VerifyComplete(layout, format),
		bundle.VerifyManifest(layout),
	} {
		if err == nil {
			continue
		}
		var verr *bundle.VerifyError
		if errors.As(err, &verr) {
			findings = append(findings, verr.Error())
			continue
		}
		// Not a verification finding: the bundle could not be read at
		// all, e.g. a missing or malformed manifest.
		return Result{ExitCode: ExitBundleFailure, Findings: []string{err.Error()}}, nil
	}
	if len(findings) > 0 {
		return Result{ExitCode: ExitBundleFailure, Findings: findings}, nil
	}
	return Result{ExitCode: ExitSuccess}, nil
}

// executeRegen deletes the artifact, re-runs the generated script, and
// checks the bundle is complete again. The script embeds its data and
// artifact paths relative to the figures root, so it runs from the
// invoker's working directory rather than the bundle directory. It runs
// with a minimal allowlisted environment so regeneration does not depend
// on ambient process state.
func executeRegen(ctx context.Context, layout bundle.Layout, inv Invocation) (Result, error) {
	artifact := layout.ArtifactFile(inv.Format)
	if err := os.Remove(artifact); err != nil && !os.IsNotExist(err) {
		return Result{ExitCode: ExitConfigError}, fmt.Errorf("remove artifact: %w", err)
	}

	cmd := exec.CommandContext(ctx, inv.GoBin, "run", layout.ScriptFile())
	cmd.Env = allowlistEnv()
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		finding := strings.TrimSpace(stderr.String())
		if finding == "" {
			finding = err.Error()
		}
		return Result{ExitCode: ExitBundleFailure, Findings: []string{finding}}, nil
	}

	if err := bundle.VerifyComplete(layout, inv.Format); err != nil {
		return Result{ExitCode: ExitBundleFailure, Findings: []string{err.Error()}}, nil
	}
	return Result{ExitCode: ExitSuccess}, nil
}

func executeFmt(ctx context.Context, layout bundle.Layout, gofmtBin string) (Result, error) {
	f := &script.Formatter{Bin: gofmtBin}
	if err := f.Format(ctx, layout.ScriptFile()); err != nil {
		return Result{ExitCode: ExitBundleFailure, Findings: []string{err.Error()}}, nil
	}
	return Result{ExitCode: ExitSuccess}, nil
}

// allowedEnvKeys is the environment passed through to regenerated
// scripts. Everything else is stripped.
var allowedEnvKeys = []string{
	"PATH",
	"HOME",
	"GOPATH",
	"GOCACHE",
	"GOMODCACHE",
	"GOFLAGS",
	"TMPDIR",
}

func allowlistEnv() []string {
	var env []string
	for _, key := range allowedEnvKeys {
		if v, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+v)
		}
	}
	sort.Strings(env)
	return env
}
