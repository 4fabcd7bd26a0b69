package cli

import "fmt"

// UsageError reports invalid flags or arguments. Commands return it
// so the caller can show usage help alongside the message.
type UsageError struct {
	Command string
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// CommandError represents a failure inside a command after its
// arguments were accepted.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewUsageError creates a new UsageError.
func NewUsageError(command, format string, args ...any) *UsageError {
	return &UsageError{
		Command: command,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
