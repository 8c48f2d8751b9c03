package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aegis-privacy/aegis-desktop/internal/desktop/health"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/lifecycle"
	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Query and control the AEGIS API server",
}

var apiHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the API server is healthy",
	RunE:  runAPIHealth,
}

var apiStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the API server's status payload",
	RunE:  runAPIStatus,
}

var apiStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Ask the desktop shell to start the API server",
	RunE:  runAPICommand(lifecycle.CmdStartAPI),
}

var apiStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Ask the desktop shell to stop the API server",
	RunE:  runAPICommand(lifecycle.CmdStopAPI),
}

var apiStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the desktop shell's lifecycle state",
	RunE:  runAPIState,
}

func init() {
	apiCmd.AddCommand(apiHealthCmd)
	apiCmd.AddCommand(apiStartCmd)
	apiCmd.AddCommand(apiStateCmd)
	apiCmd.AddCommand(apiStatusCmd)
	apiCmd.AddCommand(apiStopCmd)
}

func runAPIHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext()
	defer cancel()

	healthy, err := health.NewDefault().CheckHealth(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatHealth(healthy))
	return nil
}

func formatHealth(healthy bool) string {
	if healthy {
		return styleSuccess.Render("●") + " API server on " + models.ServerAddress() + " is healthy"
	}
	return styleError.Render("●") + " API server on " + models.ServerAddress() + " is not responding"
}

func runAPIStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext()
	defer cancel()

	status, err := health.NewDefault().Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get system status: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), status)
	return nil
}

func runAPICommand(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := connectDesktop()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := requestContext()
		defer cancel()

		resp, err := client.Invoke(ctx, name)
		if err != nil {
			return err
		}
		if !resp.OK() {
			return fmt.Errorf("%s: %s", name, resp.Error)
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatCommandResult(name, resp.Value))
		return nil
	}
}

func formatCommandResult(name string, value any) string {
	switch name {
	case lifecycle.CmdStartAPI:
		if started, _ := value.(bool); started {
			return styleSuccess.Render("API server started.")
		}
		return styleWarning.Render("API server could not be started.") + " " +
			styleHint.Render("See the desktop log for details.")
	case lifecycle.CmdStopAPI:
		return "API server stopped."
	default:
		return fmt.Sprint(value)
	}
}

func runAPIState(cmd *cobra.Command, args []string) error {
	client, err := connectDesktop()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := requestContext()
	defer cancel()

	view, err := client.State(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, field("Window", view.Window))
	fmt.Fprintln(out, field("Server", view.Server))
	fmt.Fprintln(out, field("Exiting", strconv.FormatBool(view.Exiting)))
	return nil
}
