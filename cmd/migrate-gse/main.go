// Command migrate-gse converts legacy one-setting-per-file emulator settings
// into configs.*.ini files and back.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/roach88/migrate-gse/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "Unexpected error:")
			fmt.Fprintln(os.Stderr, r)
			fmt.Fprintln(os.Stderr, "-----------------------")
			os.Stderr.Write(debug.Stack())
			fmt.Fprintln(os.Stderr, "-----------------------")
			code = cli.ExitFailure
		}
	}()

	err := cli.Execute(cli.NewRootCommand(), args)
	if err == nil {
		return cli.ExitSuccess
	}

	// Command errors have already been reported by the output formatter.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.GetExitCode(err)
}
