package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cache"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tagcloud.

Besides commands and flags, the scripts complete flag values: output formats
(-f svg,png), placement modes, font families, styles and weights, cache
backends, and input files by extension (.txt, .json, .csv, .tsv).

Bash:
  $ source <(tagcloud completion bash)

Zsh:
  $ tagcloud completion zsh > "${fpath[1]}/_tagcloud"

Fish:
  $ tagcloud completion fish > ~/.config/fish/completions/tagcloud.fish

PowerShell:
  PS> tagcloud completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// Input extensions understood by the tag readers.
var (
	tagInputExts    = []string{"txt", "text", "json", "csv", "tsv"}
	layoutInputExts = []string{"json"}
)

// registerCompletions wires value completion into every flag and positional
// argument of cmd and its subcommands that takes a known set of values.
func registerCompletions(cmd *cobra.Command) {
	values := map[string][]string{
		"mode":        errs.ValidModes,
		"font-style":  {fonts.StyleNormal, fonts.StyleItalic},
		"font-weight": {fonts.WeightNormal, fonts.WeightMedium, fonts.WeightBold},
		"cache":       {cache.BackendMemory, cache.BackendFile, cache.BackendRedis, cache.BackendMongo},
	}
	for name, vals := range values {
		if cmd.Flags().Lookup(name) != nil {
			cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
		}
	}
	if cmd.Flags().Lookup("font") != nil {
		cmd.RegisterFlagCompletionFunc("font", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return fonts.Default().Families(), cobra.ShellCompDirectiveNoFileComp
		})
	}
	if cmd.Flags().Lookup("format") != nil {
		cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}

	switch cmd.Name() {
	case "parse", "layout", "render":
		cmd.ValidArgsFunction = completeFiles(tagInputExts)
	case "visualize", "inspect":
		cmd.ValidArgsFunction = completeFiles(layoutInputExts)
	}

	for _, sub := range cmd.Commands() {
		registerCompletions(sub)
	}
}

// completeFormats completes the last entry of a comma-separated format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, f := range errs.ValidFormats {
		if !strings.Contains(","+prefix, ","+f+",") {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeFiles(exts []string) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}
