// Package editor launches the user's text editor on a file and waits for it
// to exit.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Open runs the editor command on path, attached to the current terminal,
// and blocks until the editor exits. Commands with arguments ("code --wait")
// are run through the shell.
func Open(command, path string) error {
	if command == "" {
		return fmt.Errorf("editor: no editor configured")
	}

	var cmd *exec.Cmd
	if strings.Contains(command, " ") {
		cmd = exec.Command("sh", "-c", command+" "+shellQuote(path))
	} else {
		cmd = exec.Command(command, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", command, err)
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
