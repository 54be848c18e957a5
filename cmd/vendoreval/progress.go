package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/evaluation"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/spinner"
	"golang.org/x/term"
)

// startProgress registers progress reporting on runner. A spinner is drawn
// when w is a terminal; every event is also logged. The returned function
// stops the spinner.
func startProgress(w io.Writer, runner *evaluation.Runner) (stop func()) {
	runner.OnProgress(logProgress)

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	s := spinner.Start(w, "Starting evaluation...")
	runner.OnProgress(func(event evaluation.ProgressEvent) {
		s.Set(progressMessage(event))
	})
	return s.Stop
}

func logProgress(event evaluation.ProgressEvent) {
	attrs := []any{"run_id", event.RunID, "candidates", event.Candidates}
	if event.DurationMs > 0 {
		attrs = append(attrs, "duration_ms", event.DurationMs)
	}
	for k, v := range event.Details {
		attrs = append(attrs, k, v)
	}
	slog.Debug("progress: "+string(event.EventType), attrs...)
}

func progressMessage(event evaluation.ProgressEvent) string {
	switch event.EventType {
	case evaluation.EventEvaluationStart:
		return fmt.Sprintf("Researching %d candidate(s)...", event.Candidates)
	case evaluation.EventResearchComplete:
		return "Extracting discoveries..."
	case evaluation.EventWeightsAdjusted:
		return fmt.Sprintf("Scoring with %v weight adjustment(s)...", event.Details["adjustments"])
	case evaluation.EventRankingComplete:
		return "Writing recommendation..."
	default:
		return "Done"
	}
}
