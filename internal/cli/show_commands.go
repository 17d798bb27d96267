// internal/cli/show_commands.go
package cpgreport

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// showCommandsCmd implements 'show commands', which prints the command tree
// with the command path in the first column and its description in the second.
var showCommandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCommandTree(cmd.OutOrStdout(), rootCmd)
	},
}

// commandInfo holds the path and description of a command for display.
type commandInfo struct {
	path        string
	description string
}

func writeCommandTree(w io.Writer, root *cobra.Command) error {
	entries := collectCommands(root, "", "")

	width := 0
	for _, e := range entries {
		width = max(width, len(e.path))
	}

	if _, err := fmt.Fprintln(w, "Commands and Subcommands:"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "  %s%s%s\n", e.path, strings.Repeat(" ", width-len(e.path)+2), e.description); err != nil {
			return err
		}
	}
	return nil
}

// collectCommands flattens the visible command tree, indenting each level.
func collectCommands(cmd *cobra.Command, parent, indent string) []commandInfo {
	path := cmd.Name()
	if parent != "" {
		path = parent + " " + cmd.Name()
	}
	entries := []commandInfo{{path: indent + path, description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		entries = append(entries, collectCommands(sub, path, indent+"  ")...)
	}
	return entries
}

func init() {
	showCmd.AddCommand(showCommandsCmd)
}
