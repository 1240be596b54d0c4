package main

import (
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/spf13/cobra"
)

var applyCmd = withTracing(&cobra.Command{
	Use:   "apply [agent...]",
	Short: "Write the chimera hub out to agent folders",
	Long: `Write every command and skill of the chimera hub to the given agents, or to
all agents when none are named. Each agent receives the shared fields plus
its own chimera.<agent> section.

Examples:
  chimera apply
  chimera apply claude codex --filter 'frontend:*'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := parseAgents(args)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			targets = agentsExceptHub()
		}
		config := getConversionConfigFromFlags(cmd)

		d, err := newDiscovery()
		if err != nil {
			return err
		}
		var planned []plannedRequest
		for _, to := range targets {
			p, err := planRequests(d, ir.Chimera, to, config)
			if err != nil {
				return err
			}
			planned = append(planned, p...)
		}
		return runConversions(cmd.Context(), planned, config)
	},
})

func agentsExceptHub() []ir.Identity {
	ids := make([]ir.Identity, 0, len(ir.All))
	for _, id := range ir.All {
		if !id.IsHub() {
			ids = append(ids, id)
		}
	}
	return ids
}

func init() {
	addConversionFlags(applyCmd)
	rootCmd.AddCommand(applyCmd)
}
