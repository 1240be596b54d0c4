package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/jingkaihe/chimera/pkg/library"
	"github.com/jingkaihe/chimera/pkg/presenter"
	"github.com/spf13/cobra"
)

var listCmd = withTracing(&cobra.Command{
	Use:   "list [agent...]",
	Short: "List the commands and skills of each agent",
	Long: `List the commands and skills found in each agent's folder, or in the named
agents only, with their descriptions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		agents, err := parseAgents(args)
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			agents = ir.All[:]
		}
		kind, _ := cmd.Flags().GetString("type")
		types, err := parseTypes(kind)
		if err != nil {
			return err
		}
		filters, _ := cmd.Flags().GetStringSlice("filter")

		d, err := newDiscovery()
		if err != nil {
			return err
		}
		var entries []library.Entry
		for _, agent := range agents {
			for _, t := range types {
				found, err := d.Discover(agent, t)
				if err != nil {
					return err
				}
				entries = append(entries, found...)
			}
		}
		entries, err = library.Filter(entries, filters)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			presenter.Info("No commands or skills found in " + d.Root())
			return nil
		}
		writeEntries(os.Stdout, entries)
		return nil
	},
})

func writeEntries(w io.Writer, entries []library.Entry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tTYPE\tNAME\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Agent, e.Type, e.Name, e.Description)
	}
	tw.Flush()
}

func init() {
	listCmd.Flags().StringP("type", "t", "", "Only list commands or skills")
	listCmd.Flags().StringSliceP("filter", "f", nil, "Only list documents whose name matches a glob")
	rootCmd.AddCommand(listCmd)
}
