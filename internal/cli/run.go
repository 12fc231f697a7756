package cli

import "context"

// Run is the high-level CLI entrypoint suitable for black-box tests. It
// accepts the argument slice (excluding argv[0]) plus an environment
// lookup, and returns the semantic exit code with any error.
func Run(ctx context.Context, args []string, getenv func(string) string) (Result, error) {
	inv, err := ParseInvocation(args, getenv)
	if err != nil {
		return Result{ExitCode: ExitCode(err)}, err
	}
	return Execute(ctx, inv)
}
