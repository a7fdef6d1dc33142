package utils

import (
	"fmt"
	"os"
	"os/exec"
)

// RunBashCmdVerbose runs a shell command with stdout and stderr passed
// through to the terminal.
func RunBashCmdVerbose(cmdStr string) error {
	cmd := exec.Command("bash", "-c", cmdStr)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		return err
	}
	return nil
}

// CheckDeps verifies the named external tools are on PATH. On the cluster a
// missing tool usually means the environment module was not loaded.
func CheckDeps(tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing external tools on PATH: %v (load the corresponding environment modules)", missing)
	}
	return nil
}
