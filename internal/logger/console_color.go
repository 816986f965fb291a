package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for different build metrics.
// Green: success/positive metrics. Red: failure metrics. Yellow:
// warning/threshold metrics. Cyan: labels and identifiers.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for build metrics.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric as "label: value" with
// the label colored cyan and the value colored white.
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColored := scheme.value.Sprintf("%v", value)
	return fmt.Sprintf("%s: %s", labelColored, valueColored)
}

// BuildSummary carries the counters a build run reports at the end:
// how many sources were considered, how many were actually
// recompiled, how long it took, and whether it failed.
type BuildSummary struct {
	SourcesTotal    int
	SourcesRebuilt  int
	DurationSeconds float64
	Failed          bool
}

// FormatBuildSummary renders a BuildSummary as a single colorized
// line: the "rebuilt" label in green when some work happened and cyan
// when the build was a no-op (the count itself in white), the duration
// in yellow above 10 seconds, and a red FAILED marker appended on
// failure.
func FormatBuildSummary(s BuildSummary) string {
	scheme := newColorScheme()
	var parts []string

	if s.SourcesRebuilt > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.success.Sprint("rebuilt"), scheme.value.Sprintf("%d/%d", s.SourcesRebuilt, s.SourcesTotal)))
	} else {
		parts = append(parts, formatColorizedMetric("rebuilt", fmt.Sprintf("0/%d", s.SourcesTotal), scheme))
	}

	durStr := fmt.Sprintf("%.2fs", s.DurationSeconds)
	if s.DurationSeconds > 10 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.warn.Sprint("duration"), scheme.warn.Sprint(durStr)))
	} else {
		parts = append(parts, formatColorizedMetric("duration", durStr, scheme))
	}

	if s.Failed {
		parts = append(parts, scheme.fail.Sprint("FAILED"))
	}

	return strings.Join(parts, ", ")
}
