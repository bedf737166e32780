package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for heatgrid.

Besides commands and flags, the scripts complete --format values,
--week-start weekdays and the date argument of ripple.

  $ source <(heatgrid completion bash)
  $ heatgrid completion zsh > "${fpath[1]}/_heatgrid"
  $ heatgrid completion fish | source
  PS> heatgrid completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeFormats completes the last entry of a comma-separated format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, _ := splitLast(toComplete)
	used := map[string]bool{}
	for _, f := range strings.Split(done, ",") {
		used[f] = true
	}
	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON} {
		if !used[f] {
			out = append(out, done+sep(done)+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func splitLast(s string) (done, last string) {
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+1:]
}

func sep(done string) string {
	if done == "" {
		return ""
	}
	return ","
}

// completeWeekdays lists the values accepted by --week-start.
func completeWeekdays(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, calendar.DaysPerWeek)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		out = append(out, strings.ToLower(wd.String()))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeRippleDate offers "today" and the dates of the past week.
func completeRippleDate(now func() time.Time) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		t := now()
		out := []string{"today"}
		for i := 0; i < calendar.DaysPerWeek; i++ {
			out = append(out, t.AddDate(0, 0, -i).Format(calendar.ISOLayout))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
