package orchestrator

import (
	"bytes"
	"os"
	"os/exec"
)

// Runner executes one command string and reports its exit code and
// combined output. The default implementation blocks on an external
// process; tests substitute a fake to avoid spawning a real compiler.
type Runner interface {
	Run(args []string) (exitCode int, output string, err error)
}

// ProcessRunner runs a command via os/exec, the idiomatic Go
// replacement for the source driver's fork+execve/CreateProcess
// process spawning.
type ProcessRunner struct{}

func (ProcessRunner) Run(args []string) (int, string, error) {
	if len(args) == 0 {
		return -1, "", &CompileError{Path: "", ExitCode: -1, Output: "empty command"}
	}

	cmd := exec.Command(args[0], args[1:]...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if err == nil {
		return 0, buf.String(), nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), buf.String(), nil
	}
	return -1, buf.String(), err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
