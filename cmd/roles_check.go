package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jdscolam/mndp-firebase-auth/internal/core"
	"github.com/jdscolam/mndp-firebase-auth/internal/roles"
)

var rolesCheckCmd = &cobra.Command{
	Use:   "check <group> <username>",
	Short: "Check whether a user holds the role of a group",
	Long: `Runs the role resolution of the pipeline for the given username without
validating any credential.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, username := args[0], args[1]
		return withDirectory(cmd.Context(), func(dir core.Directory) error {
			enriched, err := roles.NewResolver(dir).Resolve(cmd.Context(), core.Identity{Username: username}, group)
			if err != nil {
				return err
			}
			if enriched.HasRole {
				log.Info().Msgf("%s %s holds the role of %s", greenCheck, username, group)
			} else {
				log.Info().Msgf("%s %s does not hold the role of %s", redCross, username, group)
			}
			return nil
		})
	},
}

func init() {
	rolesCmd.AddCommand(rolesCheckCmd)
}
