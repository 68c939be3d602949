package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tvscout-cli/tvscout/color"
	"github.com/tvscout-cli/tvscout/icon"
	"github.com/tvscout-cli/tvscout/probe"
	"github.com/tvscout-cli/tvscout/style"
	"github.com/tvscout-cli/tvscout/util"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd probes a single stream locator without running a full crawl.
var checkCmd = &cobra.Command{
	Use:   "check [url]",
	Short: "Probe a single stream locator for liveness",
	Long: `Run the validation probe against one stream locator: a header check first,
then a ranged content check when the declared content type is inconclusive.
Exits non-zero when the locator does not point at a live playlist.`,
	Args:    cobra.ExactArgs(1),
	Example: "  tvscout check https://example.com/live/cctv1.m3u8",
	Run: func(cmd *cobra.Command, args []string) {
		url := args[0]

		erase := util.PrintErasable(fmt.Sprintf("%s Probing %s...", icon.Get(icon.Progress), url))
		ok, err := probe.New().Probe(cmd.Context(), url)
		erase()

		if ok {
			fmt.Printf("%s %s is a live playlist\n", icon.Get(icon.Success), style.Fg(color.Green)(url))
			return
		}

		if err != nil {
			fmt.Printf("%s %s is unreachable: %v\n", icon.Get(icon.Fail), style.Fg(color.Red)(url), err)
		} else {
			fmt.Printf("%s %s is reachable but not a playlist\n", icon.Get(icon.Fail), style.Fg(color.Red)(url))
		}
		os.Exit(1)
	},
}
