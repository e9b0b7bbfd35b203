package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/pkg/client"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()

	greenCheck = color.GreenString("✔")
	redCross   = color.RedString("✘")
)

func applyTableFormat(t table.Writer) {
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Format.Header = text.FormatDefault
}

// logError logs a remote error with its correlation ID and returns it.
func logError(err error, correlationID, msg string) error {
	event := log.Error().Err(err).Str("correlation_id", correlationID)
	var apiErr client.APIError
	if errors.As(err, &apiErr) {
		event = event.Int("status", apiErr.StatusCode)
	}
	event.Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
