package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"reprofig/internal/cli"
)

// main canonicalizes all inputs into an Invocation before any bundle
// logic runs. A .env file in the working directory may supply defaults
// such as REPROFIG_FIGURES_DIR.
func main() {
	_ = godotenv.Load()

	inv, err := cli.ParseInvocation(os.Args[1:], os.Getenv)
	if err != nil {
		var invErr *cli.InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintln(os.Stderr, invErr.Message)
			os.Exit(invErr.ExitCode)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitInternalError)
	}

	result, execErr := cli.Execute(context.Background(), inv)
	if execErr != nil {
		fmt.Fprintln(os.Stderr, execErr)
	}
	for _, finding := range result.Findings {
		fmt.Fprintln(os.Stderr, finding)
	}
	os.Exit(result.ExitCode)
}
