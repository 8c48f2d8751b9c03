package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aegis-privacy/aegis-desktop/internal/desktop/health"
	"github.com/aegis-privacy/aegis-desktop/internal/tui"
)

var monitorInterval time.Duration

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch API server health and status live",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunMonitor(health.NewDefault(), monitorInterval)
	},
}

func init() {
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", 2*time.Second, "Polling interval")
}
