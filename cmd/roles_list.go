package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

var rolesListCmd = &cobra.Command{
	Use:     "list <group>",
	Aliases: []string{"ls"},
	Short:   "List the members holding the role of a group",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDirectory(cmd.Context(), func(dir core.Directory) error {
			log.Debug().Str("group", args[0]).Msg("Retrieving members...")
			members, err := dir.Members(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(members) == 0 {
				log.Info().Msgf("Group '%s' has no members.", args[0])
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Key", "Username"})
			for _, m := range members {
				t.AppendRow(table.Row{
					faint(m.Key),
					color.New(color.Bold).Sprint(m.Value),
				})
			}
			t.AppendFooter(table.Row{"", len(members)})

			applyTableFormat(t)
			t.Render()
			return nil
		})
	},
}

func init() {
	rolesCmd.AddCommand(rolesListCmd)
}
