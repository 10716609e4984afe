package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/migrate-gse/internal/inicodec"
	"github.com/roach88/migrate-gse/internal/legacy"
	"github.com/roach88/migrate-gse/internal/render"
	"github.com/roach88/migrate-gse/internal/revert"
	"github.com/roach88/migrate-gse/internal/settingsdir"
)

// DefaultOutputDir is where migrated settings are written.
const DefaultOutputDir = "steam_settings"

// RunOptions holds flags for a migration run in either direction.
type RunOptions struct {
	*RootOptions
	Revert bool
	Out    string
	DryRun bool
}

// MigrateResult is the structured payload of a migration run.
type MigrateResult struct {
	Direction string       `json:"direction" yaml:"direction"` // "convert" or "revert"
	Source    string       `json:"source" yaml:"source"`
	Output    string       `json:"output" yaml:"output"`
	DryRun    bool         `json:"dry_run" yaml:"dry_run"`
	Files     []FileResult `json:"files" yaml:"files"`
	Ignored   []string     `json:"ignored,omitempty" yaml:"ignored,omitempty"`
}

// FileResult describes one produced file. Content and Diff are only set
// for dry runs.
type FileResult struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Diff    string `json:"diff,omitempty" yaml:"diff,omitempty"`

	before string
}

func addRunFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().StringVarP(&opts.Out, "out", "o", DefaultOutputDir, "output folder")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the files that would change instead of writing them")
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert [settings-folder]",
		Short: "Convert legacy .txt settings into configs.*.ini",
		Long: `Convert every recognised legacy .txt settings file in the folder into the
consolidated configs.*.ini files. Unrecognised files are ignored. When the
same setting is given by more than one file, the first rule wins.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(opts, args, cmd)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

// NewRevertCommand creates the revert command.
func NewRevertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts, Revert: true}

	cmd := &cobra.Command{
		Use:   "revert [settings-folder]",
		Short: "Convert configs.*.ini back into legacy .txt settings",
		Long: `Read every *.ini* file under the folder and write the legacy .txt file of
each setting that has one. Boolean settings only produce a file when their
value has the polarity the legacy file stands for.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(opts, args, cmd)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

func runMigrate(opts *RunOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := opts.logger(cmd)

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	dir, err := settingsdir.Resolve(arg, opts.env.GOOS, opts.env.Getenv)
	if err != nil {
		return fail(formatter, err)
	}
	formatter.Println(fmt.Sprintf("searching inside the folder: \"%s\"", dir))

	result := &MigrateResult{Source: dir, Output: opts.Out, DryRun: opts.DryRun}
	if opts.Revert {
		result.Direction = "revert"
		err = revertFolder(opts, dir, log, result)
	} else {
		result.Direction = "convert"
		err = convertFolder(opts, dir, log, result)
	}
	if err != nil {
		return fail(formatter, err)
	}

	return outputMigrateSuccess(formatter, result)
}

func convertFolder(opts *RunOptions, dir string, log *slog.Logger, result *MigrateResult) error {
	mapper := &legacy.Mapper{Logger: log}
	scan, err := mapper.Scan(dir)
	if err != nil {
		return err
	}
	result.Ignored = scan.Ignored
	if scan.Empty() {
		return errNothingFound
	}

	if !opts.DryRun {
		written, err := inicodec.WriteFiles(opts.Out, scan.Store)
		if err != nil {
			return err
		}
		for _, path := range written {
			result.Files = append(result.Files, FileResult{Name: filepath.Base(path)})
		}
		return nil
	}

	names, files, err := inicodec.MarshalStore(scan.Store)
	if err != nil {
		return err
	}
	for _, name := range names {
		fr, err := preview(opts.Out, name, string(files[name]))
		if err != nil {
			return err
		}
		result.Files = append(result.Files, fr)
	}
	return nil
}

func revertFolder(opts *RunOptions, dir string, log *slog.Logger, result *MigrateResult) error {
	cfg, paths, err := inicodec.Load(dir)
	if err != nil {
		return err
	}
	log.Debug("settings files parsed", "dir", dir, "count", len(paths))

	w := &revert.Writer{Dir: opts.Out, Logger: log, DryRun: opts.DryRun}
	report, err := w.Write(cfg)
	if err != nil {
		return err
	}
	if report.Count() == 0 {
		return errNothingFound
	}

	for _, out := range report.Written {
		if !opts.DryRun {
			result.Files = append(result.Files, FileResult{Name: out.Name})
			continue
		}
		fr, err := preview(opts.Out, out.Name, out.Content)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, fr)
	}
	return nil
}

// preview compares content against the file currently at dir/name. A
// missing file compares as empty.
func preview(dir, name, content string) (FileResult, error) {
	path := filepath.Join(dir, name)
	before, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return FileResult{}, &inicodec.FileError{Op: "read", Path: path, Err: err}
	}
	diff := render.Differ{}.Diff(name, string(before), content)
	return FileResult{Name: name, Content: content, Diff: diff, before: string(before)}, nil
}

func outputMigrateSuccess(formatter *OutputFormatter, result *MigrateResult) error {
	for _, name := range result.Ignored {
		formatter.VerboseLog("ignored unrecognised file: %s", name)
	}
	if !result.DryRun {
		for _, fr := range result.Files {
			formatter.VerboseLog("wrote %s", filepath.Join(result.Output, fr.Name))
		}
	}

	if formatter.Structured() {
		return formatter.Success(result)
	}

	if !result.DryRun {
		fmt.Fprintf(formatter.Writer, "new settings written inside: \"%s\"\n", result.Output)
		return nil
	}

	differ := render.Differ{Color: formatter.Color}
	changed := 0
	for _, fr := range result.Files {
		if fr.Diff == "" {
			continue
		}
		changed++
		fmt.Fprint(formatter.Writer, differ.Diff(fr.Name, fr.before, fr.Content))
	}
	formatter.Done("dry run: %d of %d file(s) would change inside \"%s\"", changed, len(result.Files), result.Output)
	return nil
}
