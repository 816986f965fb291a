package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBuildSummaryNoWork(t *testing.T) {
	line := FormatBuildSummary(BuildSummary{SourcesTotal: 5, SourcesRebuilt: 0, DurationSeconds: 0.1})
	assert.Contains(t, line, "0/5")
}

func TestFormatBuildSummaryFailed(t *testing.T) {
	line := FormatBuildSummary(BuildSummary{SourcesTotal: 3, SourcesRebuilt: 1, Failed: true})
	assert.Contains(t, line, "FAILED")
}

func TestFormatBuildSummarySlowDurationFlagged(t *testing.T) {
	line := FormatBuildSummary(BuildSummary{SourcesTotal: 3, SourcesRebuilt: 3, DurationSeconds: 42})
	assert.Contains(t, line, "42.00s")
}
