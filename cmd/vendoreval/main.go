package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0   // Evaluation completed
	ExitError          = 1   // Configuration or runtime error
	ExitInvalidRequest = 2   // Request file failed validation
	ExitInterrupted    = 130 // Cancelled by signal
)

// ValidationError indicates that a request file was read successfully but
// failed validation.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d validation issue(s)", e.Path, len(e.Issues))
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &validationErr), errors.Is(err, models.ErrInvalidRequest):
		return ExitInvalidRequest
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitError
	}
}
