package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
	copilot "github.com/github/copilot-sdk/go"
)

// ErrEmptyResponse is returned when a Copilot session finishes without an
// assistant message.
var ErrEmptyResponse = errors.New("copilot returned no assistant message")

// Copilot answers evidence and narrative queries through the GitHub Copilot
// SDK. One client is shared by all queries; every query gets its own session.
type Copilot struct {
	model   string
	timeout time.Duration
	client  copilotClient

	startOnce sync.Once
	startErr  error
}

// CopilotOptions configures NewCopilot.
type CopilotOptions struct {
	// Timeout bounds each query. Defaults to two minutes.
	Timeout time.Duration

	NewCopilotClient func(clientOptions *copilot.ClientOptions) copilotClient
}

// NewCopilot creates a Copilot-backed oracle. model may be blank, in which
// case the Copilot CLI picks its own default.
func NewCopilot(model string, options *CopilotOptions) *Copilot {
	clientOptions := &copilot.ClientOptions{
		LogLevel:  "error",
		AutoStart: copilot.Bool(false),
	}

	c := &Copilot{model: model, timeout: 2 * time.Minute}

	if options != nil && options.Timeout > 0 {
		c.timeout = options.Timeout
	}
	if options == nil || options.NewCopilotClient == nil {
		c.client = newCopilotClient(clientOptions)
	} else {
		c.client = options.NewCopilotClient(clientOptions)
	}
	return c
}

// Query implements EvidenceOracle.
func (c *Copilot) Query(ctx context.Context, q *EvidenceQuery) (*EvidenceResult, error) {
	if q == nil {
		return nil, fmt.Errorf("nil query was passed to Copilot.Query")
	}

	hints, err := DecodeHints(q.Hints)
	if err != nil {
		return nil, err
	}

	if q.Kind == QueryHiddenRisks {
		text, err := c.ask(ctx, RiskPrompt(q, hints))
		if err != nil {
			return nil, err
		}
		return &EvidenceResult{Risks: ParseRiskResponse(text)}, nil
	}

	text, err := c.ask(ctx, EvidencePrompt(q, hints))
	if err != nil {
		return nil, err
	}
	analysis, keywords := SplitKeywords(text)
	res := &EvidenceResult{Analysis: analysis, Keywords: keywords}
	if q.Criterion == models.CriterionSDKQuality {
		res.Analysis, res.Capabilities = SplitCapabilities(analysis, hints.TechStack)
	}
	return res, nil
}

// Recommend implements NarrativeOracle.
func (c *Copilot) Recommend(ctx context.Context, req *NarrativeRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("nil request was passed to Copilot.Recommend")
	}
	return c.ask(ctx, NarrativePrompt(req))
}

// Close stops the Copilot client.
func (c *Copilot) Close() error {
	if err := c.client.Stop(); err != nil {
		slog.Info("failed to stop copilot client", "error", err)
		return err
	}
	return nil
}

func (c *Copilot) ask(ctx context.Context, prompt string) (string, error) {
	c.startOnce.Do(func() {
		// the client's own autostart races when sessions are created from
		// several goroutines at once
		c.startErr = c.client.Start(ctx)
	})
	if c.startErr != nil {
		return "", fmt.Errorf("copilot failed to start: %w", c.startErr)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session, err := c.client.CreateSession(ctx, &copilot.SessionConfig{
		Model:               c.model,
		OnPermissionRequest: allowAllTools,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	unsubscribe := session.On(utils.SessionToSlog)
	defer unsubscribe()

	event, err := session.SendAndWait(ctx, copilot.MessageOptions{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("session %s: %w", session.SessionID(), err)
	}
	if event == nil || event.Data.Content == nil || strings.TrimSpace(*event.Data.Content) == "" {
		return "", fmt.Errorf("session %s: %w", session.SessionID(), ErrEmptyResponse)
	}
	return *event.Data.Content, nil
}

func allowAllTools(request copilot.PermissionRequest, invocation copilot.PermissionInvocation) (copilot.PermissionRequestResult, error) {
	// research needs web fetch and search tools
	return copilot.PermissionRequestResult{Kind: "approved"}, nil
}
