package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/migrate-gse/internal/inicodec"
	"github.com/roach88/migrate-gse/internal/kvstore"
	"github.com/roach88/migrate-gse/internal/legacy"
	"github.com/roach88/migrate-gse/internal/render"
	"github.com/roach88/migrate-gse/internal/settingsdir"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Legacy bool
}

// ShowResult is the structured payload of the show command.
type ShowResult struct {
	Source string `json:"source" yaml:"source"`
	// Files lists the parsed *.ini* files, or the recognised legacy files.
	Files    []string    `json:"files" yaml:"files"`
	Ignored  []string    `json:"ignored,omitempty" yaml:"ignored,omitempty"`
	Settings render.Tree `json:"settings" yaml:"settings"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [settings-folder]",
		Short: "Print the merged settings of a folder",
		Long: `Parse every *.ini* file under the folder and print the merged settings.
With --legacy the folder is read as legacy .txt settings instead and the
consolidated files that convert would write are printed, comments included.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Legacy, "legacy", false, "read legacy .txt settings")
	return cmd
}

func runShow(opts *ShowOptions, args []string, cmd *cobra.Command) error {
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

	result := ShowResult{Source: dir}
	var tree *kvstore.Map
	if opts.Legacy {
		scan, err := (&legacy.Mapper{Logger: log}).Scan(dir)
		if err != nil {
			return fail(formatter, err)
		}
		tree, result.Files, result.Ignored = scan.Store, scan.Matched, scan.Ignored
	} else {
		tree, result.Files, err = inicodec.Load(dir)
		if err != nil {
			return fail(formatter, err)
		}
	}
	if tree.Len() == 0 {
		return fail(formatter, errNothingFound)
	}
	result.Settings = render.Tree{Map: tree}

	if formatter.Structured() {
		return formatter.Success(result)
	}
	if !opts.Legacy {
		return inicodec.Encode(formatter.Writer, tree)
	}

	names, files, err := inicodec.MarshalStore(tree)
	if err != nil {
		return fail(formatter, err)
	}
	for _, name := range names {
		fmt.Fprintf(formatter.Writer, "==> %s <==\n%s", name, files[name])
	}
	return nil
}
