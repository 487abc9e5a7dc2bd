package topics

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// completionCmd represents the "completion" command
var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generates bash completion",
	Long: `Valet client can provide bash completion for most commands and arguments.
To load completion, run:

. <({{valet}} completion generate)

To configure your bash shell to load completions for each session;
add this line to your ~/.bashrc or ~/.profile file.

VM names and usernames are completed using the current session.
`,
	Annotations: noConfig(),
}

func init() {
	binaryPath, _ := os.Executable()

	if os.PathSeparator == '\\' {
		binaryPath = strings.Replace(binaryPath, "\\", "/", -1)
	}

	completionCmd.Long = strings.Replace(completionCmd.Long, "{{valet}}", binaryPath, -1)
	rootCmd.AddCommand(completionCmd)
}
