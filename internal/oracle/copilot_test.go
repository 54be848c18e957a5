package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	copilot "github.com/github/copilot-sdk/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCopilot(t *testing.T, clientMock *MockcopilotClient) *Copilot {
	t.Helper()
	return NewCopilot("gpt-4o-mini", &CopilotOptions{
		Timeout:          time.Minute,
		NewCopilotClient: func(clientOptions *copilot.ClientOptions) copilotClient { return clientMock },
	})
}

func reply(text string) *copilot.SessionEvent {
	return &copilot.SessionEvent{Data: copilot.Data{Content: &text}}
}

func TestCopilotQuery_Dimension(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientMock := NewMockcopilotClient(ctrl)
	sessionMock := NewMockcopilotSession(ctrl)

	unregistered := 0

	clientMock.EXPECT().Start(gomock.Any()).Times(1)
	clientMock.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, config *copilot.SessionConfig) (copilotSession, error) {
			require.Equal(t, "gpt-4o-mini", config.Model)
			require.NotNil(t, config.OnPermissionRequest)
			return sessionMock, nil
		}).Times(2)

	sessionMock.EXPECT().On(gomock.Any()).Times(2).Return(func() { unregistered++ })
	sessionMock.EXPECT().SendAndWait(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, options copilot.MessageOptions) (*copilot.SessionEvent, error) {
			assert.Contains(t, options.Prompt, "Task: Analyze uptime history for Acme")
			assert.Contains(t, options.Prompt, "Tech stack: Go, React")
			return reply("Two major outages in 2024.\nKEYWORDS: outage, unreliable"), nil
		}).Times(2)

	c := newTestCopilot(t, clientMock)
	q := &EvidenceQuery{
		Kind:      QueryDimension,
		Candidate: models.Candidate{Name: "Acme"},
		Criterion: models.CriterionUptimeReliability,
		Topic:     "Analyze uptime history for Acme",
		Hints:     map[string]any{HintTechStack: []string{"Go", "React"}},
	}

	for range 2 {
		res, err := c.Query(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, "Two major outages in 2024.", res.Analysis)
		assert.Equal(t, []string{"outage", "unreliable"}, res.Keywords)
	}
	assert.Equal(t, 2, unregistered)
}

func TestCopilotQuery_HiddenRisks(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientMock := NewMockcopilotClient(ctrl)
	sessionMock := NewMockcopilotSession(ctrl)

	clientMock.EXPECT().Start(gomock.Any())
	clientMock.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(sessionMock, nil)
	sessionMock.EXPECT().On(gomock.Any()).Return(func() {})
	sessionMock.EXPECT().SendAndWait(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, options copilot.MessageOptions) (*copilot.SessionEvent, error) {
			assert.Contains(t, options.Prompt, "lockin: proprietary formats")
			assert.Contains(t, options.Prompt, "NO_RISK")
			return reply("RISK: vendor_lockin\nSEVERITY: low\nEVIDENCE: No export API"), nil
		})

	res, err := newTestCopilot(t, clientMock).Query(context.Background(), &EvidenceQuery{
		Kind:      QueryHiddenRisks,
		Candidate: models.Candidate{Name: "Acme"},
		Topic:     "Detect hidden risks for Acme",
		Hints:     map[string]any{HintRiskProbes: []string{models.RiskLockIn}},
	})
	require.NoError(t, err)
	require.Len(t, res.Risks, 1)
	assert.Equal(t, "vendor_lockin", res.Risks[0].Type)
	assert.Equal(t, models.SeverityLow, res.Risks[0].Severity)
}

func TestCopilotQuery_SessionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientMock := NewMockcopilotClient(ctrl)
	sessionMock := NewMockcopilotSession(ctrl)

	boom := errors.New("boom")

	clientMock.EXPECT().Start(gomock.Any())
	clientMock.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(sessionMock, nil).Times(2)
	sessionMock.EXPECT().On(gomock.Any()).Return(func() {}).Times(2)
	sessionMock.EXPECT().SessionID().Return("session-1").Times(2)
	gomock.InOrder(
		sessionMock.EXPECT().SendAndWait(gomock.Any(), gomock.Any()).Return(nil, boom),
		sessionMock.EXPECT().SendAndWait(gomock.Any(), gomock.Any()).Return(&copilot.SessionEvent{}, nil),
	)

	c := newTestCopilot(t, clientMock)
	q := &EvidenceQuery{Kind: QueryDimension, Candidate: models.Candidate{Name: "Acme"}}

	_, err := c.Query(context.Background(), q)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "session-1")

	_, err = c.Query(context.Background(), q)
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCopilotStartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientMock := NewMockcopilotClient(ctrl)

	clientMock.EXPECT().Start(gomock.Any()).Return(errors.New("no cli")).Times(1)

	c := newTestCopilot(t, clientMock)
	_, err := c.Recommend(context.Background(), &NarrativeRequest{})
	require.ErrorContains(t, err, "copilot failed to start")

	// the start error sticks
	_, err = c.Query(context.Background(), &EvidenceQuery{})
	require.ErrorContains(t, err, "no cli")
}

func TestCopilotRecommend(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientMock := NewMockcopilotClient(ctrl)
	sessionMock := NewMockcopilotSession(ctrl)

	clientMock.EXPECT().Start(gomock.Any())
	clientMock.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(sessionMock, nil)
	clientMock.EXPECT().Stop()
	sessionMock.EXPECT().On(gomock.Any()).Return(func() {})
	sessionMock.EXPECT().SendAndWait(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, options copilot.MessageOptions) (*copilot.SessionEvent, error) {
			assert.Contains(t, options.Prompt, "You are pragmatic.")
			assert.Contains(t, options.Prompt, "**Acme**: Weighted Score 7.5/10")
			return reply("RECOMMENDED VENDOR: Acme"), nil
		})

	c := newTestCopilot(t, clientMock)
	text, err := c.Recommend(context.Background(), &NarrativeRequest{
		Persona: "You are pragmatic.",
		Scores:  []models.VendorScore{{Vendor: "Acme", WeightedScore: 7.5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "RECOMMENDED VENDOR: Acme", text)
	require.NoError(t, c.Close())
}

func TestCopilotQuery_SDKCapabilities(t *testing.T) {
	ctrl := gomock.NewController(t)
	clientMock := NewMockcopilotClient(ctrl)
	sessionMock := NewMockcopilotSession(ctrl)

	clientMock.EXPECT().Start(gomock.Any())
	clientMock.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(sessionMock, nil)
	sessionMock.EXPECT().On(gomock.Any()).Return(func() {})
	sessionMock.EXPECT().SendAndWait(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, options copilot.MessageOptions) (*copilot.SessionEvent, error) {
			assert.Contains(t, options.Prompt, "UNSUPPORTED")
			return reply("Good documentation, SDKs for Python only.\nSUPPORTED: python\nUNSUPPORTED: go\nKEYWORDS: documented"), nil
		})

	c := newTestCopilot(t, clientMock)
	res, err := c.Query(context.Background(), &EvidenceQuery{
		Kind:      QueryDimension,
		Candidate: models.Candidate{Name: "Acme"},
		Criterion: models.CriterionSDKQuality,
		Topic:     "Analyze SDK quality for Acme",
		Hints:     map[string]any{HintTechStack: []string{"Go", "Python"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Good documentation, SDKs for Python only.", res.Analysis)
	assert.Equal(t, []string{"documented"}, res.Keywords)
	assert.Equal(t, map[string]bool{"Go": false, "Python": true}, res.Capabilities)
}
