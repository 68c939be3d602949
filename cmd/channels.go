package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tvscout-cli/tvscout/color"
	"github.com/tvscout-cli/tvscout/config"
	"github.com/tvscout-cli/tvscout/icon"
	"github.com/tvscout-cli/tvscout/key"
	"github.com/tvscout-cli/tvscout/style"
	"github.com/tvscout-cli/tvscout/util"
)

func init() {
	rootCmd.AddCommand(channelsCmd)
	channelsCmd.AddCommand(channelsListCmd)
	channelsCmd.AddCommand(channelsAddCmd)
	channelsCmd.AddCommand(channelsRemoveCmd)
	channelsCmd.AddCommand(channelsResetCmd)
}

// writeLineup persists the lineup to the configuration file.
func writeLineup(lineup []string) {
	viper.Set(key.CrawlerChannels, lineup)
	switch err := viper.WriteConfig(); err.(type) {
	case viper.ConfigFileNotFoundError:
		handleErr(viper.SafeWriteConfig())
	default:
		handleErr(err)
	}
}

// channelsCmd serves as the parent command for managing the default channel lineup.
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Manage the default channel lineup",
}

// channelsListCmd displays the configured channel lineup.
var channelsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Display the configured channel lineup",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		lineup := viper.GetStringSlice(key.CrawlerChannels)

		fmt.Printf("%s %s\n\n", icon.Get(icon.Playlist), util.Quantify(len(lineup), "channel", "channels"))
		for _, channel := range lineup {
			fmt.Printf("  %s\n", style.Fg(color.Purple)(channel))
		}
	},
}

// channelsAddCmd appends channel keywords to the lineup.
var channelsAddCmd = &cobra.Command{
	Use:   "add [channel...]",
	Short: "Add channel keywords to the lineup",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lineup := viper.GetStringSlice(key.CrawlerChannels)
		merged := lo.Union(lineup, args)

		if len(merged) == len(lineup) {
			fmt.Printf("%s nothing to add\n", icon.Get(icon.Fail))
			return
		}

		writeLineup(merged)
		fmt.Printf(
			"%s added %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(len(merged)-len(lineup), "channel", "channels"),
		)
	},
}

// channelsRemoveCmd removes channel keywords from the lineup.
var channelsRemoveCmd = &cobra.Command{
	Use:     "remove [channel...]",
	Short:   "Remove channel keywords from the lineup",
	Aliases: []string{"rm"},
	Args:    cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return viper.GetStringSlice(key.CrawlerChannels), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		lineup := viper.GetStringSlice(key.CrawlerChannels)
		remaining := lo.Without(lineup, args...)

		if len(remaining) == len(lineup) {
			fmt.Printf("%s nothing to remove\n", icon.Get(icon.Fail))
			return
		}

		writeLineup(remaining)
		fmt.Printf(
			"%s removed %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(len(lineup)-len(remaining), "channel", "channels"),
		)
	},
}

// channelsResetCmd restores the factory default lineup.
var channelsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the factory default channel lineup",
	Run: func(cmd *cobra.Command, args []string) {
		writeLineup(config.Default[key.CrawlerChannels].Value.([]string))
		fmt.Printf("%s lineup reset to defaults\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
