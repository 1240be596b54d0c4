package main

import (
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	convertFrom ir.Identity
	convertTo   ir.Identity
)

var convertCmd = withTracing(&cobra.Command{
	Use:   "convert --from <agent> --to <agent> [name...]",
	Short: "Convert commands and skills from one agent to another",
	Long: `Convert commands and skills from one agent's folder to another's. Names and
--filter patterns select documents; nested commands are named with ':' so
frontend/build.md is frontend:build.

Examples:
  chimera convert --from claude --to gemini
  chimera convert --from codex --to opencode review 'frontend:*'
  chimera convert --from claude --to codex --type skill --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if convertFrom == "" || convertTo == "" {
			return errors.New("both --from and --to are required")
		}
		config := getConversionConfigFromFlags(cmd)
		config.Filters = append(config.Filters, args...)

		d, err := newDiscovery()
		if err != nil {
			return err
		}
		planned, err := planRequests(d, convertFrom, convertTo, config)
		if err != nil {
			return err
		}
		return runConversions(cmd.Context(), planned, config)
	},
})

func init() {
	convertCmd.Flags().Var(newAgentValue(&convertFrom), "from", "Agent to convert from")
	convertCmd.Flags().Var(newAgentValue(&convertTo), "to", "Agent to convert to")
	addConversionFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}
