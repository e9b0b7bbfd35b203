package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdscolam/mndp-firebase-auth/pkg/client"
)

var auditLogOpts client.ListAuditsOpts

// auditLogCmd represents the audit log command
var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Retrieve and display audit log entries",
	Example: `  mndpauth audit log --server http://localhost:8080 -n 10
  mndpauth audit log --user dj_sam
  mndpauth audit log --correlation-id d0g1k2...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := f.GetClient(client.WithAdminToken(viper.GetString(AdminTokenKey)))
		if err != nil {
			return err
		}

		log.Debug().Msg("Fetching audit log...")
		audits, correlationID, err := cli.ListAudits(cmd.Context(), auditLogOpts)
		if err != nil {
			return logError(err, correlationID, "failed to fetch audit log")
		}
		if len(audits) == 0 {
			log.Info().Msg("No audit entries found.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Time", "Correlation", "User", "Group", "Role", "Result", "Fingerprint",
		})

		for _, e := range audits {
			result := greenCheck
			if !e.Success {
				result = redCross + " " + truncate(e.Error, 30)
			}
			role := ""
			if e.HasRole {
				role = green("yes")
			}
			user := e.Username
			if user == "" {
				user = faint("(unknown)")
			}

			t.AppendRow(table.Row{
				e.Time.Format(time.RFC3339),
				faint(e.ID),
				bold(user),
				e.Group,
				role,
				result,
				truncate(e.TokenFingerprint, 15),
			})
		}
		t.AppendFooter(table.Row{"", "", "", "", "", "", len(audits)})

		applyTableFormat(t)
		t.Render()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLogCmd)

	auditLogCmd.Flags().UintVarP(&auditLogOpts.Limit, "limit", "n", 25, "Number of audit entries to retrieve")
	auditLogCmd.Flags().StringVar(&auditLogOpts.CorrelationID, "correlation-id", "", "Only show the entry of this request")
	auditLogCmd.Flags().StringVarP(&auditLogOpts.Username, "user", "u", "", "Only show entries of this username")
	auditLogCmd.Flags().StringVar(&auditLogOpts.Fingerprint, "fingerprint", "", "Only show the entry of the token with this fingerprint")
}
