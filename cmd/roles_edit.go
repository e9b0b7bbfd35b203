package cmd

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

var rolesAddCmd = &cobra.Command{
	Use:     "add <group> <username>",
	Short:   "Grant the role of a group to a user",
	Example: `  mndpauth roles add -f mndpauth.yaml mondaynight dj_sam`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, username := args[0], args[1]
		return withDirectory(cmd.Context(), func(dir core.Directory) error {
			w, err := writable(dir)
			if err != nil {
				return err
			}
			member, err := w.Add(cmd.Context(), group, username)
			if err != nil {
				return err
			}
			log.Info().Msgf("%s %s holds the role of %s (key: %s)",
				greenCheck, color.New(color.Bold).Sprint(username), group, member.Key)
			return nil
		})
	},
}

var rolesRemoveCmd = &cobra.Command{
	Use:     "remove <group> <username>",
	Aliases: []string{"rm"},
	Short:   "Revoke the role of a group from a user",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, username := args[0], args[1]
		return withDirectory(cmd.Context(), func(dir core.Directory) error {
			w, err := writable(dir)
			if err != nil {
				return err
			}
			n, err := w.Remove(cmd.Context(), group, username)
			if err != nil {
				return err
			}
			if n == 0 {
				log.Warn().Msgf("%s was not a member of %s", username, group)
				return nil
			}
			log.Info().Msgf("%s removed %d record(s) of %s from %s", greenCheck, n, username, group)
			return nil
		})
	},
}

func init() {
	rolesCmd.AddCommand(rolesAddCmd)
	rolesCmd.AddCommand(rolesRemoveCmd)
}
