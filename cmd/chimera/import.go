package main

import (
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/spf13/cobra"
)

var importCmd = withTracing(&cobra.Command{
	Use:   "import <agent> [name...]",
	Short: "Import an agent's commands and skills into the chimera hub",
	Long: `Import an agent's commands and skills into the chimera hub in .chimera.
Shared fields are updated in place, the agent's own settings are stored in
its chimera.<agent> section, and sections of other agents are left alone.

Examples:
  chimera import claude
  chimera import gemini 'git:*' --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := ir.ParseIdentity(args[0])
		if err != nil {
			return err
		}
		config := getConversionConfigFromFlags(cmd)
		config.Filters = append(config.Filters, args[1:]...)

		d, err := newDiscovery()
		if err != nil {
			return err
		}
		planned, err := planRequests(d, from, ir.Chimera, config)
		if err != nil {
			return err
		}
		return runConversions(cmd.Context(), planned, config)
	},
})

func init() {
	addConversionFlags(importCmd)
	rootCmd.AddCommand(importCmd)
}
