package clusterstatus

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// Runner runs one process to completion and hands back its output streams.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec. Stdout and stderr are captured
// separately.
type ExecRunner struct {
	// WaitDelay bounds how long Run waits for the output pipes after the
	// process has been killed.
	WaitDelay time.Duration
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = time.Second
	}

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
