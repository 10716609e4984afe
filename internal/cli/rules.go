package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/migrate-gse/internal/legacy"
	"github.com/roach88/migrate-gse/internal/revert"
)

// RulesOptions holds flags for the rules command.
type RulesOptions struct {
	*RootOptions
	Revert bool
}

// RuleInfo describes one row of a rule table.
type RuleInfo struct {
	Match   []string `json:"match" yaml:"match"` // legacy filenames, or a filename pattern
	Kind    string   `json:"kind" yaml:"kind"`
	File    string   `json:"file,omitempty" yaml:"file,omitempty"`
	Section string   `json:"section" yaml:"section"`
	Key     string   `json:"key,omitempty" yaml:"key,omitempty"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "rules",
		Short:         "List the legacy file rules",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Revert, "revert", "r", false, "list the .ini to .txt rules instead")
	return cmd
}

func runRules(opts *RulesOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var infos []RuleInfo
	if opts.Revert {
		infos = revertRuleInfos()
	} else {
		infos = convertRuleInfos()
	}

	if formatter.Structured() {
		return formatter.Success(infos)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MATCH\tKIND\tFILE\tSECTION\tKEY")
	for _, r := range infos {
		key := r.Key
		if key == "" {
			key = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", strings.Join(r.Match, ", "), r.Kind, r.File, r.Section, key)
	}
	return tw.Flush()
}

func convertRuleInfos() []RuleInfo {
	table := legacy.Rules()
	infos := make([]RuleInfo, 0, len(table))
	for _, r := range table {
		match := r.Names
		if len(match) == 0 {
			match = []string{r.Label()}
		}
		infos = append(infos, RuleInfo{
			Match:   match,
			Kind:    r.Kind.String(),
			File:    r.Target.File,
			Section: r.Target.Section,
			Key:     r.Target.Key,
			Comment: r.Comment,
		})
	}
	return infos
}

func revertRuleInfos() []RuleInfo {
	table := revert.Rules()
	infos := make([]RuleInfo, 0, len(table))
	for _, r := range table {
		kind := r.Strategy.String()
		if r.Strategy == revert.Bool {
			kind = fmt.Sprintf("bool(%t)", r.Expect)
		}
		infos = append(infos, RuleInfo{
			Match:   []string{r.File},
			Kind:    kind,
			Section: r.Section,
			Key:     r.Key,
		})
	}
	return infos
}
