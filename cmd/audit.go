package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// AdminTokenKey is the viper key of the token sent to admin routes.
const AdminTokenKey = "admin_token"

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the audit trail of a running gateway",
	Long: `Reads the audit trail of the gateway given by --server. The gateway must
run with server.admin_token set and a memory or file audit enabled.`,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.PersistentFlags().String("admin-token", "", "Admin token of the gateway (env MNDPAUTH_ADMIN_TOKEN)")
	_ = viper.BindPFlag(AdminTokenKey, auditCmd.PersistentFlags().Lookup("admin-token"))
}
