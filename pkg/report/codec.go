// Package report encodes checklist completion into a visit's free-text
// body and parses it back into summary statistics. The body is a de
// facto serialization format: the "Completed: c/t items" line is the
// only machine-read element, everything else is for human reading.
package report

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FormatMarker versions the text encoding so the format can evolve
// without breaking decode of historical records, which predate any
// marker and are still accepted.
const FormatMarker = "Report-Format: v1"

// summaryPattern matches the load-bearing completion line. Only the
// first match in a body is authoritative.
var summaryPattern = regexp.MustCompile(`Completed: (\d+)/(\d+) items`)

// Grade is the four-tier completion classification used by dashboards
// and visit tables.
type Grade string

const (
	GradeComplete   Grade = "complete"
	GradeMostlyDone Grade = "mostly-done"
	GradePartial    Grade = "partial"
	GradeStarted    Grade = "started"
	GradeNoData     Grade = "no-data"
)

// Item is one checklist entry's completion state at visit time.
type Item struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

// Summary is the structured view decoded from a report body.
type Summary struct {
	Completed  int   `json:"completed"`
	Total      int   `json:"total"`
	Percentage int   `json:"percentage"`
	Grade      Grade `json:"grade"`
}

// Encode renders a report body: the staff member's free-form notes,
// the format marker, the completion line, then itemized completed and
// outstanding sections.
func Encode(checklistTitle string, items []Item, notes string) string {
	var b strings.Builder

	if notes = strings.TrimSpace(notes); notes != "" {
		b.WriteString(notes)
		b.WriteString("\n\n")
	}

	b.WriteString(FormatMarker)
	b.WriteString("\n")

	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}

	if checklistTitle != "" {
		fmt.Fprintf(&b, "Checklist: %s\n", checklistTitle)
	}
	fmt.Fprintf(&b, "Completed: %d/%d items\n", completed, len(items))

	var done, open []Item
	for _, item := range items {
		if item.Completed {
			done = append(done, item)
		} else {
			open = append(open, item)
		}
	}

	if len(done) > 0 {
		b.WriteString("\nCompleted items:\n")
		for _, item := range done {
			fmt.Fprintf(&b, "✓ %s", item.Text)
			if n := strings.TrimSpace(item.Notes); n != "" {
				fmt.Fprintf(&b, " — %s", n)
			}
			b.WriteString("\n")
		}
	}

	if len(open) > 0 {
		b.WriteString("\nOutstanding items:\n")
		for _, item := range open {
			fmt.Fprintf(&b, "○ %s\n", item.Text)
		}
	}

	return b.String()
}

// Decode extracts completion statistics from a report body. A body
// with no completion line, or a 0/0 line, classifies as no-data rather
// than erroring: plenty of stored visits are plain prose.
func Decode(body string) Summary {
	m := summaryPattern.FindStringSubmatch(body)
	if m == nil {
		return Summary{Grade: GradeNoData}
	}

	completed, _ := strconv.Atoi(m[1])
	total, _ := strconv.Atoi(m[2])
	if total == 0 {
		return Summary{Grade: GradeNoData}
	}

	pct := int(math.Round(float64(completed) / float64(total) * 100))
	return Summary{
		Completed:  completed,
		Total:      total,
		Percentage: pct,
		Grade:      gradeFor(pct),
	}
}

func gradeFor(pct int) Grade {
	switch {
	case pct == 100:
		return GradeComplete
	case pct >= 75:
		return GradeMostlyDone
	case pct >= 25:
		return GradePartial
	default:
		return GradeStarted
	}
}
