package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tvscout-cli/tvscout/color"
	"github.com/tvscout-cli/tvscout/crawl"
	"github.com/tvscout-cli/tvscout/history"
	"github.com/tvscout-cli/tvscout/icon"
	"github.com/tvscout-cli/tvscout/key"
	"github.com/tvscout-cli/tvscout/log"
	"github.com/tvscout-cli/tvscout/query"
	"github.com/tvscout-cli/tvscout/style"
	"github.com/tvscout-cli/tvscout/util"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringSliceP("channels", "c", []string{}, "Channel keywords to search for, overriding the configured lineup")
	lo.Must0(crawlCmd.RegisterFlagCompletionFunc("channels", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		lineup := viper.GetStringSlice(key.CrawlerChannels)
		return lo.Union(query.SuggestMany(toComplete), lineup), cobra.ShellCompDirectiveNoFileComp
	}))

	crawlCmd.Flags().IntP("pages", "p", 0, "Search result pages to fetch per channel")
	lo.Must0(viper.BindPFlag(key.CrawlerPages, crawlCmd.Flags().Lookup("pages")))

	crawlCmd.Flags().StringP("output", "o", "", "Playlist file path, overriding the configured location")
	crawlCmd.Flags().StringP("group", "g", "", "group-title attribute attached to every playlist entry")
	lo.Must0(viper.BindPFlag(key.OutputGroup, crawlCmd.Flags().Lookup("group")))

	crawlCmd.Flags().BoolP("json", "j", false, "Format the run report as a JSON object")
	crawlCmd.Flags().BoolP("interactive", "i", false, "Pick channels from the configured lineup interactively")
	crawlCmd.MarkFlagsMutuallyExclusive("channels", "interactive")
}

// crawlCmd executes the discover-validate-emit pipeline for a channel lineup.
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Discover live streams for a channel lineup and emit an M3U playlist",
	Long: `Search the configured endpoint for every channel keyword, validate each
discovered stream locator and write the surviving streams as an extended-M3U playlist.`,
	Example: "  tvscout crawl -c CCTV1,CCTV5 -p 3 -o lineup.m3u",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			channels    = lo.Must(cmd.Flags().GetStringSlice("channels"))
			output      = lo.Must(cmd.Flags().GetString("output"))
			asJson      = lo.Must(cmd.Flags().GetBool("json"))
			interactive = lo.Must(cmd.Flags().GetBool("interactive"))
		)

		if interactive {
			channels = pickChannels()
		}

		if len(channels) == 0 {
			channels = viper.GetStringSlice(key.CrawlerChannels)
		}

		for _, channel := range channels {
			if err := query.Remember(channel, 1); err != nil {
				log.Warn(err)
			}
		}

		crawler := crawl.New()
		if output != "" {
			crawler.OutputPath = output
		}

		if !asJson {
			fmt.Printf(
				"%s Crawling %s across %s...\n",
				icon.Get(icon.Search),
				util.Quantify(len(channels), "channel", "channels"),
				util.Quantify(crawler.Scheduler.Pages, "page", "pages"),
			)
		}

		// The root command delegates here directly, outside of Execute.
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		report, err := crawler.Run(ctx, channels)

		if viper.GetBool(key.HistorySaveRuns) && report != nil {
			if saveErr := history.Save(report); saveErr != nil {
				log.Warn(saveErr)
			}
		}

		writeActionsOutput(report)

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(report))
			if err != nil {
				os.Exit(1)
			}
			return
		}

		if err != nil {
			if report != nil && report.Discovered > 0 {
				fmt.Printf(
					"%s %s discovered, none passed validation\n",
					icon.Get(icon.Fail),
					util.Quantify(report.Discovered, "locator", "locators"),
				)
			}
			handleErr(err)
		}

		printSummary(report)
	},
}

// pickChannels prompts an interactive multi-select over the configured lineup.
func pickChannels() []string {
	lineup := viper.GetStringSlice(key.CrawlerChannels)

	prompt := survey.MultiSelect{
		Message:  "Select channels to crawl",
		Options:  lineup,
		Default:  lineup,
		PageSize: 15,
	}

	var picked []string
	handleErr(survey.AskOne(&prompt, &picked, survey.WithValidator(survey.Required)))
	return picked
}

// printSummary renders the human-readable run report.
func printSummary(report *crawl.Report) {
	fmt.Printf(
		"\n%s %s valid out of %s discovered in %.1fs\n",
		icon.Get(icon.Success),
		style.Fg(color.Green)(fmt.Sprint(report.Valid)),
		style.Bold(fmt.Sprint(report.Discovered)),
		report.Elapsed,
	)

	channels := lo.Keys(report.PerChannel)
	slices.Sort(channels)

	for _, channel := range channels {
		fmt.Printf(
			"  %s %s %s\n",
			icon.Get(icon.Link),
			style.Fg(color.Purple)(channel),
			style.Faint(util.Quantify(report.PerChannel[channel], "stream", "streams")),
		)
	}

	width, _, err := util.TerminalSize()
	if err != nil {
		width = 80
	}
	width = util.Max(width, 40)

	fmt.Printf(
		"\n%s %s\n",
		icon.Get(icon.Playlist),
		wordwrap.String(fmt.Sprintf("Playlist written to %s", style.Bold(report.OutputFile)), width),
	)
}

// writeActionsOutput exports run statistics as GitHub Actions step outputs when
// running inside a workflow.
func writeActionsOutput(report *crawl.Report) {
	if os.Getenv("GITHUB_ACTIONS") != "true" || report == nil {
		return
	}

	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Warn(err)
		return
	}
	defer util.Ignore(f.Close)

	fmt.Fprintf(f, "total_links=%d\n", report.Discovered)
	fmt.Fprintf(f, "valid_links=%d\n", report.Valid)
	fmt.Fprintf(f, "output_file=%s\n", report.OutputFile)
}
