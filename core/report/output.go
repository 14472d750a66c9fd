package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"data-reconciler/core/reconcile"
)

// maxListedFailures caps the failures printed by Summary.
const maxListedFailures = 20

// Result is the JSON form of a finished run.
type Result struct {
	RunID     string                  `json:"run_id"`
	Profile   string                  `json:"profile"`
	Aggregate *reconcile.RunAggregate `json:"aggregate"`
	Duration  time.Duration           `json:"duration_ns"`
	Reports   []Report                `json:"reports"`
}

// WriteJSON saves res as <profile>_result_<run>.json in dir and returns the path.
func WriteJSON(dir string, res Result) (string, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	file := filepath.Join(dir, fmt.Sprintf("%s_result_%s.json", res.Profile, res.RunID))
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save JSON file: %w", err)
	}
	return file, nil
}

// Summary renders the metrics block of a run.
func Summary(profile string, agg *reconcile.RunAggregate) string {
	var b strings.Builder

	verdict := "PASS"
	if !agg.OverallPass {
		verdict = "FAIL"
	}

	fmt.Fprintf(&b, "=== Reconciliation Metrics: %s ===\n", profile)
	fmt.Fprintf(&b, "Total Validated: %d\n", agg.TotalValidated)
	fmt.Fprintf(&b, "Passed: %d\n", agg.TotalPass)
	fmt.Fprintf(&b, "Failed: %d\n", agg.TotalFail)
	fmt.Fprintf(&b, "Pages Fetched: %d\n", agg.Pages)
	fmt.Fprintf(&b, "Result: %s\n", verdict)

	if len(agg.FailureKeys) == 0 {
		return b.String()
	}

	b.WriteString("\nFailures:\n")
	for i, f := range agg.OrderedFailures() {
		if i == maxListedFailures {
			fmt.Fprintf(&b, "  ... and %d more\n", len(agg.FailureKeys)-maxListedFailures)
			break
		}
		fmt.Fprintf(&b, "  %s: %s\n", f.Key, f.Summary)
	}
	return b.String()
}
