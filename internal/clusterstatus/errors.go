package clusterstatus

import (
	"fmt"
	"strings"
)

// CommandFailure is returned for a query whose script run did not exit
// cleanly. A missing script, a non-zero exit and a timeout all end up here.
type CommandFailure struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandFailure) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("Command '%s' exited with error: %s", e.Command, msg)
}

func (e *CommandFailure) Unwrap() error {
	return e.Err
}
