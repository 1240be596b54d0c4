package main

import (
	"fmt"

	"github.com/jingkaihe/chimera/pkg/agents"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of chimera hub frontmatter",
	Long: `Print the JSON schema of the frontmatter used by documents in the chimera
hub, for editor validation of .chimera/commands and .chimera/skills.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := agents.HubSchemaJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
