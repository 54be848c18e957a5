package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Path: "request.yaml", Issues: []string{"a", "b"}}
	assert.Equal(t, "request.yaml: 2 validation issue(s)", err.Error())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", &ValidationError{Path: "x"}, ExitInvalidRequest},
		{"wrapped invalid request", fmt.Errorf("failed to load request: %w", models.ErrInvalidRequest), ExitInvalidRequest},
		{"cancelled", fmt.Errorf("evaluation failed: %w", context.Canceled), ExitInterrupted},
		{"other", errors.New("config error"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
