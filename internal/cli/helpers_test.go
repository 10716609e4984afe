package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/roach88/migrate-gse/internal/testutil"
)

const testRunID = "0190b6a4-0000-7000-8000-000000000000"

// testEnv pins the platform, environment and run id. vars is the entire
// environment.
func testEnv(vars map[string]string) Env {
	return Env{
		GOOS:       "linux",
		Getenv:     func(name string) string { return vars[name] },
		RunIDs:     testutil.NewFixedRunID(testRunID),
		IsTerminal: func(io.Writer) bool { return false },
	}
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, env Env, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommandWithEnv(env)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := Execute(cmd, args)
	return stdout.String(), stderr.String(), err
}
