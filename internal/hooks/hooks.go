// Package hooks runs user-configured shell commands around an evaluation.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Lifecycle points.
const (
	BeforeEvaluate = "before_evaluate"
	AfterEvaluate  = "after_evaluate"
)

// Environment variables passed to hook commands.
const (
	EnvRequest     = "VENDOREVAL_REQUEST"
	EnvRunID       = "VENDOREVAL_RUN_ID"
	EnvRecommended = "VENDOREVAL_RECOMMENDED"
	EnvReport      = "VENDOREVAL_REPORT"
)

// HookConfig defines a single hook command.
type HookConfig struct {
	Command          string `yaml:"command" json:"command" mapstructure:"command"`
	WorkingDirectory string `yaml:"working_directory,omitempty" json:"working_directory,omitempty" mapstructure:"working_directory"`
	ExitCodes        []int  `yaml:"exit_codes,omitempty" json:"exit_codes,omitempty" mapstructure:"exit_codes"`
	ErrorOnFail      bool   `yaml:"error_on_fail,omitempty" json:"error_on_fail,omitempty" mapstructure:"error_on_fail"`
}

// HooksConfig holds all lifecycle hooks.
type HooksConfig struct {
	BeforeEvaluate []HookConfig `yaml:"before_evaluate,omitempty" json:"before_evaluate,omitempty" mapstructure:"before_evaluate"`
	AfterEvaluate  []HookConfig `yaml:"after_evaluate,omitempty" json:"after_evaluate,omitempty" mapstructure:"after_evaluate"`
}

// Runner executes hook commands at lifecycle points.
type Runner struct {
	// Dir is the default working directory for hooks without one.
	Dir    string
	Logger *slog.Logger
}

// Execute runs all hooks for a given lifecycle point. env is added to the
// hook's environment. name identifies the lifecycle point for logging and
// error context.
func (r *Runner) Execute(ctx context.Context, name string, hooks []HookConfig, env map[string]string) error {
	for i, h := range hooks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hook %s: context canceled: %w", name, err)
		}

		if err := r.runHook(ctx, name, i, h, env); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) runHook(ctx context.Context, name string, index int, h HookConfig, env map[string]string) error {
	if strings.TrimSpace(h.Command) == "" {
		return fmt.Errorf("hook %s[%d]: empty command", name, index)
	}

	parts := strings.Fields(h.Command)
	//nolint:gosec // hook commands come from the user's own project config
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)

	cmd.Dir = r.Dir
	if h.WorkingDirectory != "" {
		cmd.Dir = h.WorkingDirectory
	}
	cmd.Env = append(os.Environ(), environ(env)...)

	output, err := cmd.CombinedOutput()
	log := r.logger().With("hook", fmt.Sprintf("%s[%d]", name, index))
	if len(output) > 0 {
		log.Debug("hook output", "output", strings.TrimSpace(string(output)))
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Non-exit error (e.g. command not found)
			if h.ErrorOnFail {
				return fmt.Errorf("hook %s[%d]: %w", name, index, err)
			}
			log.Warn("hook failed, continuing", "error", err)
			return nil
		}
		exitCode = exitErr.ExitCode()
	}

	if !isAcceptableExit(exitCode, h.ExitCodes) {
		if h.ErrorOnFail {
			return fmt.Errorf("hook %s[%d]: command exited with code %d", name, index, exitCode)
		}
		log.Warn("hook exited with unexpected code, continuing", "exit_code", exitCode)
	}
	return nil
}

func environ(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// isAcceptableExit checks whether exitCode is in the allowed list.
// An empty allowedCodes list defaults to allowing only exit code 0.
func isAcceptableExit(exitCode int, allowedCodes []int) bool {
	if len(allowedCodes) == 0 {
		return exitCode == 0
	}
	for _, code := range allowedCodes {
		if exitCode == code {
			return true
		}
	}
	return false
}
