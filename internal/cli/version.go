package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/aegis-privacy/aegis-desktop/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", styleBrand.Render("AEGIS"), styleVersion.Render(buildinfo.Version))
		fmt.Println("  " + field("Commit", buildinfo.CommitHash))
		fmt.Println("  " + field("Built", buildinfo.BuildDate))
		fmt.Println("  " + field("OS/Arch", runtime.GOOS+"/"+runtime.GOARCH))
		fmt.Println("  " + field("Go", runtime.Version()))
	},
}
