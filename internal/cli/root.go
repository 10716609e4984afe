package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"

	env Env
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// RunIDGenerator produces the id stamped on structured responses.
type RunIDGenerator interface {
	Generate() string
}

type uuidRunIDs struct{}

// Generate returns a time-ordered UUIDv7.
func (uuidRunIDs) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Env is the process environment commands run in. Tests replace it to pin
// the platform, environment variables and run ids.
type Env struct {
	GOOS   string
	Getenv func(string) string
	RunIDs RunIDGenerator
	// IsTerminal reports whether output written to w reaches a terminal.
	IsTerminal func(w io.Writer) bool
}

// DefaultEnv describes the running process.
func DefaultEnv() Env {
	return Env{
		GOOS:       runtime.GOOS,
		Getenv:     os.Getenv,
		RunIDs:     uuidRunIDs{},
		IsTerminal: isTerminal,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatter builds the output formatter for one invocation of cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	f := &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
	if o.env.IsTerminal != nil {
		f.Color = o.env.IsTerminal(f.Writer)
	}
	if o.env.RunIDs != nil {
		f.RunID = o.env.RunIDs.Generate()
	}
	return f
}

// logger returns the diagnostics logger: debug level with --verbose,
// warnings only otherwise.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// NewRootCommand creates the root command for the process environment.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithEnv(DefaultEnv())
}

// NewRootCommandWithEnv creates the root command for env.
func NewRootCommandWithEnv(env Env) *cobra.Command {
	opts := &RootOptions{env: env}
	runOpts := &RunOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "migrate-gse [settings-folder]",
		Short: "Migrate legacy emulator settings to and from configs.*.ini",
		Long: `Migrate a folder of one-setting-per-file .txt settings into the
consolidated configs.main.ini, configs.app.ini, configs.user.ini and
configs.overlay.ini files, or convert them back with --revert.

Running the tool without a folder reads the global settings folder
("Goldberg SteamEmu Saves/settings" under APPDATA on Windows, otherwise
under XDG_DATA_HOME or HOME). Output is written to ./steam_settings.

The legacy switches -revert and /?, -?, --?, /h, -h, --h, /help, -help,
--help are accepted.`,
		Example: `  migrate-gse
  migrate-gse --revert
  migrate-gse "D:\game\steam_settings"
  migrate-gse --revert "D:\game\steam_settings"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(runOpts, args, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	addRunFlags(cmd, runOpts)
	cmd.Flags().BoolVarP(&runOpts.Revert, "revert", "r", false, "convert all .ini files back to .txt files")

	// Add subcommands
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewRevertCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))

	return cmd
}

// Execute runs the root command with legacy switch spellings normalised.
func Execute(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(NormalizeArgs(args))
	return cmd.Execute()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
