package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tvscout-cli/tvscout/color"
	"github.com/tvscout-cli/tvscout/history"
	"github.com/tvscout-cli/tvscout/icon"
	"github.com/tvscout-cli/tvscout/style"
	"github.com/tvscout-cli/tvscout/util"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 10, "Maximum number of runs to display")
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
}

// historyCmd displays saved crawl run records, most recent first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display saved crawl runs",
	Run: func(cmd *cobra.Command, args []string) {
		runs, err := history.Get()
		handleErr(err)

		limit := lo.Must(cmd.Flags().GetInt("limit"))
		if limit > 0 && len(runs) > limit {
			runs = runs[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(runs))
			return
		}

		if len(runs) == 0 {
			fmt.Printf("%s no saved runs\n", icon.Get(icon.Fail))
			return
		}

		for i, run := range runs {
			fmt.Printf(
				"%s %s  %s valid / %s discovered  %s\n",
				icon.Get(icon.Playlist),
				style.Bold(run.StartedAt.Format("2006-01-02 15:04")),
				style.Fg(color.Green)(fmt.Sprint(run.Valid)),
				fmt.Sprint(run.Discovered),
				style.Faint(util.Quantify(len(run.Channels), "channel", "channels")),
			)

			if run.OutputFile != "" {
				fmt.Printf("  %s\n", style.Faint(run.OutputFile))
			}

			if i < len(runs)-1 {
				fmt.Println()
			}
		}
	},
}
