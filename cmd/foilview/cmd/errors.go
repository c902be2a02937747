package cmd

import (
	"errors"

	bolterrors "go.etcd.io/bbolt/errors"

	"github.com/corey/foilview/internal/domain/airfoil"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitParseError = 2
)

// ExitCode maps a command error to the process exit code: 2 when a
// coordinate file could not be parsed, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var pe *airfoil.ParseError
	if errors.As(err, &pe) {
		return exitParseError
	}
	return exitError
}

// isDBLockError reports whether bbolt gave up waiting for the file lock
// held by another process.
func isDBLockError(err error) bool {
	return errors.Is(err, bolterrors.ErrTimeout)
}
