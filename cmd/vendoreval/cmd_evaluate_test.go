package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture returns the absolute path of a testdata file and moves the test
// into an empty directory so no project config is picked up.
func fixture(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Chdir(t.TempDir())
	return p
}

func execRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEvaluateCommand_Markdown(t *testing.T) {
	req := fixture(t, "payments.yaml")

	out, _, err := execRoot(t, "evaluate", req, "--engine", "mock")
	require.NoError(t, err)

	assert.Contains(t, out, "# Vendor Evaluation Report")
	assert.Contains(t, out, "Stripe, Razorpay, Adyen")
	assert.Contains(t, out, "## Criteria Weight Adjustments")
	assert.Contains(t, out, "### Recommended: **Adyen**")
	assert.Contains(t, out, "Request a sandbox account")
}

func TestEvaluateCommand_JSONThenRender(t *testing.T) {
	req := fixture(t, "payments.yaml")
	report := filepath.Join(t.TempDir(), "report.json")

	out, errOut, err := execRoot(t, "evaluate", req, "--engine", "mock", "--format", "json", "-o", report)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Report saved to: "+report)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var rec models.Recommendation
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "Adyen", rec.RecommendedVendor)
	assert.False(t, rec.UsedFallback)
	assert.Len(t, rec.VendorScores, 3)
	assert.NotEmpty(t, rec.WeightAdjustments)
	assert.Greater(t, rec.InitialWeights[models.CriterionCompliance], 15.0)

	out, _, err = execRoot(t, "render", report, "--format", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Vendor Evaluation ===")
	assert.Contains(t, out, "Recommended: Adyen\n")
	assert.Contains(t, out, "Hidden risks: 1 (0 high)")
	assert.Contains(t, out, "1. Request a sandbox account")
}

func TestEvaluateCommand_NoDynamicWeights(t *testing.T) {
	req := fixture(t, "payments.yaml")

	out, _, err := execRoot(t, "evaluate", req, "--engine", "mock", "--format", "json", "--no-dynamic-weights")
	require.NoError(t, err)

	var rec models.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Empty(t, rec.WeightAdjustments)
	for id, w := range rec.InitialWeights {
		assert.InDelta(t, w, rec.FinalWeights[id], 1e-9, id)
	}
}

func TestEvaluateCommand_CacheThenClear(t *testing.T) {
	req := fixture(t, "payments.yaml")
	dir := filepath.Join(t.TempDir(), "cache")

	_, _, err := execRoot(t, "evaluate", req, "--engine", "mock", "--format", "summary", "--cache", "--cache-dir", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.True(t, strings.HasSuffix(e.Name(), ".json.zst"), e.Name())
	}

	// A second run is served from the cache and reaches the same verdict.
	out, _, err := execRoot(t, "evaluate", req, "--engine", "mock", "--format", "summary", "--cache", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended: Adyen")

	out, _, err = execRoot(t, "cache", "clear", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleared: "+dir)
	assert.NoDirExists(t, dir)
}

func TestEvaluateCommand_Errors(t *testing.T) {
	req := fixture(t, "payments.yaml")
	invalid, err := filepath.Abs(filepath.Join(filepath.Dir(req), "invalid.yaml"))
	require.NoError(t, err)

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := execRoot(t, "evaluate", req, "--engine", "mock", "--format", "pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pdf")
	})

	t.Run("unknown engine", func(t *testing.T) {
		_, _, err := execRoot(t, "evaluate", req, "--engine", "bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "engine")
	})

	t.Run("invalid request", func(t *testing.T) {
		_, _, err := execRoot(t, "evaluate", invalid, "--engine", "mock")
		require.ErrorIs(t, err, models.ErrInvalidRequest)
		assert.Equal(t, ExitInvalidRequest, exitCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execRoot(t, "evaluate", "does-not-exist.yaml", "--engine", "mock")
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestEvaluateCommand_ConfigFile(t *testing.T) {
	req := fixture(t, "payments.yaml")
	config := "engine: mock\nweighting:\n  dynamic: false\n"
	require.NoError(t, os.WriteFile(".vendoreval.yaml", []byte(config), 0o644))

	out, _, err := execRoot(t, "evaluate", req, "--format", "json")
	require.NoError(t, err)

	var rec models.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Empty(t, rec.WeightAdjustments)
}

func TestEvaluateCommand_CandidatesCSV(t *testing.T) {
	req := fixture(t, "payments.yaml")
	extra := filepath.Join(filepath.Dir(req), "extra.csv")

	out, _, err := execRoot(t, "evaluate", req, "--engine", "mock", "--format", "json", "--candidates", extra)
	require.NoError(t, err)

	var rec models.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, []string{"Stripe", "Razorpay", "Adyen", "Mollie"}, rec.Candidates)

	// Duplicates across the request and the CSV are rejected.
	dup := filepath.Join(t.TempDir(), "dup.csv")
	require.NoError(t, os.WriteFile(dup, []byte("name\nstripe\n"), 0o644))
	_, _, err = execRoot(t, "evaluate", req, "--engine", "mock", "--candidates", dup)
	require.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestEvaluateCommand_Transcript(t *testing.T) {
	req := fixture(t, "payments.yaml")

	_, _, err := execRoot(t, "evaluate", req, "--engine", "mock", "--format", "summary", "--transcript-dir", "transcripts")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join("transcripts", "payments-2026-*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var tr struct {
		RunID   string `json:"run_id"`
		Entries []struct {
			Vendor string `json:"vendor"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(data, &tr))
	assert.NotEmpty(t, tr.RunID)
	// Ten criteria plus one hidden-risk probe per candidate.
	assert.Len(t, tr.Entries, 33)
	assert.Equal(t, "Adyen", tr.Entries[0].Vendor)
}

func TestEvaluateCommand_Hooks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}
	req := fixture(t, "payments.yaml")

	dir, err := os.Getwd()
	require.NoError(t, err)
	script := filepath.Join(dir, "after.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$VENDOREVAL_RECOMMENDED\" > recommended.txt\n"), 0o755))
	config := "engine: mock\nhooks:\n  before_evaluate:\n    - command: \"true\"\n  after_evaluate:\n    - command: " + script + "\n      error_on_fail: true\n"
	require.NoError(t, os.WriteFile(".vendoreval.yaml", []byte(config), 0o644))

	_, _, err = execRoot(t, "evaluate", req, "--format", "summary")
	require.NoError(t, err)

	data, err := os.ReadFile("recommended.txt")
	require.NoError(t, err)
	assert.Equal(t, "Adyen\n", string(data))
}

func TestEvaluateCommand_BeforeHookFailureStopsRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses false")
	}
	req := fixture(t, "payments.yaml")
	config := "engine: mock\nhooks:\n  before_evaluate:\n    - command: \"false\"\n      error_on_fail: true\n"
	require.NoError(t, os.WriteFile(".vendoreval.yaml", []byte(config), 0o644))

	out, _, err := execRoot(t, "evaluate", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before_evaluate[0]")
	assert.Empty(t, out)
}

func TestEvaluateOptions_Apply(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := projectconfig.New()
	require.True(t, *cfg.Weighting.Dynamic)
	require.False(t, *cfg.Cache.Enabled)

	opts := &evaluateOptions{
		engine:           "mock",
		workers:          7,
		noDynamicWeights: true,
		enableCache:      true,
		cacheDir:         "cache",
		transcriptDir:    "transcripts",
	}
	require.NoError(t, opts.apply(cfg))

	assert.False(t, *cfg.Weighting.Dynamic)
	assert.True(t, *cfg.Cache.Enabled)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, filepath.Join(dir, "cache"), cfg.Cache.Dir)
	assert.Equal(t, filepath.Join(dir, "transcripts"), cfg.TranscriptDir)

	// unset flags leave config values alone
	cfg = projectconfig.New()
	require.NoError(t, (&evaluateOptions{}).apply(cfg))
	assert.True(t, *cfg.Weighting.Dynamic)
	assert.False(t, *cfg.Cache.Enabled)
	assert.Equal(t, projectconfig.DefaultCacheDir, cfg.Cache.Dir)

	err := (&evaluateOptions{engine: "bogus"}).apply(projectconfig.New())
	assert.ErrorContains(t, err, "engine")
}
