package cmd

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tvscout-cli/tvscout/crawl"
	"github.com/tvscout-cli/tvscout/history"
	"github.com/tvscout-cli/tvscout/playlist"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().Bool("history", false, "Generate the schema for saved run history records")
	schemaCmd.Flags().BoolP("entry", "e", false, "Generate the schema for playlist entries")
	schemaCmd.MarkFlagsMutuallyExclusive("history", "entry")
}

// schemaCmd generates JSON schemas for the structured outputs of the crawl command.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured command outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("history")):
			schema = reflector.Reflect([]*history.SavedRun{})
		case lo.Must(cmd.Flags().GetBool("entry")):
			schema = reflector.Reflect(&playlist.Entry{})
		default:
			schema = reflector.Reflect(&crawl.Report{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
