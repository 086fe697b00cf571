// Package simcli renders simulation runs for the terminal: a padded,
// optionally colored event-trace table and an ASCII histogram of
// scheduler occupancy over time, adapted from lazydocker's pkg/utils
// table/padding/color helpers.
package simcli

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jesseduffield/asciigraph"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	"simcore/pkg/simerrors"
)

var ansiEscape = regexp.MustCompile(`\x1B\[([0-9]{1,2}(;[0-9]{1,2})?)?[mK]`)

// Decolorise strips ANSI color escapes, needed to measure a colored
// string's true display width.
func Decolorise(str string) string {
	return ansiEscape.ReplaceAllString(str, "")
}

// WithPadding right-pads str with spaces up to padding display columns,
// measuring width after stripping any color escapes it already carries.
func WithPadding(str string, padding int) string {
	uncolored := Decolorise(str)
	width := runewidth.StringWidth(uncolored)
	if padding < width {
		return str
	}
	return str + strings.Repeat(" ", padding-width)
}

// ColoredString wraps str in the given color attribute, unless the
// attribute is FgWhite (treated as "terminal default, don't touch it"),
// mirroring lazydocker's ColoredString convention for light-theme terminals.
func ColoredString(str string, attr color.Attribute) string {
	if attr == color.FgWhite {
		return str
	}
	return color.New(attr).SprintFunc()(str)
}

// TraceRow is one printable row of an event-trace table: the columns a
// simulator.Engine's run produces are timestamp, context, uid, and a
// free-form description of the fired event.
type TraceRow struct {
	Timestamp   string
	Context     string
	UID         string
	Description string
}

// RenderTraceTable formats rows as a left-aligned, space-padded,
// column-aligned table (header colored when colorize is set), truncated
// to maxRows (0 means unlimited).
// Truncation is reported via the returned count of rows dropped.
func RenderTraceTable(rows []TraceRow, maxRows int, colorize bool) (table string, dropped int) {
	if len(rows) == 0 {
		return "", 0
	}

	shown := rows
	if maxRows > 0 && len(rows) > maxRows {
		dropped = len(rows) - maxRows
		shown = rows[:maxRows]
	}

	header := []string{"ts", "ctx", "uid", "event"}
	grid := make([][]string, 0, len(shown)+1)
	grid = append(grid, header)
	for _, r := range shown {
		grid = append(grid, []string{r.Timestamp, r.Context, r.UID, r.Description})
	}

	widths := columnWidths(grid)
	lines := make([]string, len(grid))
	for i, row := range grid {
		var b strings.Builder
		for j, width := range widths {
			cell := row[j]
			if colorize && i == 0 {
				cell = ColoredString(cell, color.FgCyan)
			}
			b.WriteString(WithPadding(cell, width))
			b.WriteString(" ")
		}
		b.WriteString(row[len(row)-1])
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n"), dropped
}

// columnWidths returns, for every column but the last, the widest
// (color-stripped) cell across all rows; the last column is left
// unpadded since it is free-form text.
func columnWidths(grid [][]string) []int {
	if len(grid[0]) <= 1 {
		return nil
	}
	widths := make([]int, len(grid[0])-1)
	for _, row := range grid {
		for i := range widths {
			w := runewidth.StringWidth(Decolorise(row[i]))
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// OccupancyHistogram renders an ASCII line chart of per-sample scheduler
// occupancy (e.g. calendar-queue bucket counts, or events-invoked-per-tick),
// sized to width columns and height rows.
func OccupancyHistogram(samples []float64, width, height int) (string, error) {
	if len(samples) == 0 {
		return "", simerrors.New(simerrors.SchedulerEmpty, "no occupancy samples to plot")
	}
	return asciigraph.Plot(samples, asciigraph.Width(width), asciigraph.Height(height)), nil
}

// PeakOccupancy returns the largest sample and its index, using
// samber/lo's generic max lookup rather than a hand-rolled loop.
func PeakOccupancy(samples []float64) (value float64, index int) {
	if len(samples) == 0 {
		return 0, -1
	}
	peak := lo.Max(samples)
	return peak, lo.IndexOf(samples, peak)
}

// SummaryLine formats a one-line colored run summary, e.g.
// "12345 events, 0 unscheduled, finished at 9999 ns, run exhausted the scheduler".
func SummaryLine(eventCount uint64, unscheduled int32, finishedAt string, colorize bool) string {
	base := lo.Ternary(unscheduled == 0,
		"run exhausted the scheduler",
		"run stopped early")
	line := SafeJoin([]string{
		strconv.FormatUint(eventCount, 10) + " events",
		strconv.Itoa(int(unscheduled)) + " unscheduled",
		"finished at " + finishedAt,
		base,
	})
	if colorize {
		return ColoredString(line, color.FgGreen)
	}
	return line
}

// SafeJoin joins non-empty parts with ", ".
func SafeJoin(parts []string) string {
	nonEmpty := lo.Filter(parts, func(p string, _ int) bool { return p != "" })
	return strings.Join(nonEmpty, ", ")
}
