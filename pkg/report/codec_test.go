package report

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	items := []Item{
		{Text: "Vacuum floors", Completed: true, Notes: "done twice"},
		{Text: "Wipe surfaces", Completed: true},
		{Text: "Empty bins", Completed: true},
		{Text: "Restock supplies", Completed: false},
		{Text: "Check windows", Completed: false},
	}

	body := Encode("Basic Clean", items, "All good overall.")
	got := Decode(body)

	if got.Completed != 3 || got.Total != 5 {
		t.Fatalf("Decode counts = %d/%d, want 3/5", got.Completed, got.Total)
	}
	if got.Percentage != 60 {
		t.Errorf("Percentage = %d, want 60", got.Percentage)
	}
	if got.Grade != GradePartial {
		t.Errorf("Grade = %s, want %s", got.Grade, GradePartial)
	}
}

func TestEncodeBodyLayout(t *testing.T) {
	items := []Item{
		{Text: "Mop entrance", Completed: true, Notes: "slippery when wet"},
		{Text: "Dust shelves", Completed: false},
	}

	body := Encode("Lobby", items, "Quiet morning.")

	for _, want := range []string{
		"Quiet morning.",
		FormatMarker,
		"Checklist: Lobby",
		"Completed: 1/2 items",
		"✓ Mop entrance — slippery when wet",
		"○ Dust shelves",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q\nbody:\n%s", want, body)
		}
	}
}

func TestDecodeZeroTotalIsNoData(t *testing.T) {
	body := Encode("Empty", nil, "")
	got := Decode(body)
	if got.Grade != GradeNoData {
		t.Errorf("Grade = %s, want %s for 0/0", got.Grade, GradeNoData)
	}

	// the literal 0/0 pattern must not divide
	got = Decode("Completed: 0/0 items")
	if got.Grade != GradeNoData {
		t.Errorf("Grade = %s, want %s for literal 0/0", got.Grade, GradeNoData)
	}
}

func TestDecodeGrades(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Grade
	}{
		{"all complete", "Completed: 4/4 items", GradeComplete},
		{"mostly done at 75", "Completed: 3/4 items", GradeMostlyDone},
		{"partial at 60", "Completed: 3/5 items", GradePartial},
		{"partial lower bound", "Completed: 1/4 items", GradePartial},
		{"started below 25", "Completed: 1/5 items", GradeStarted},
		{"started at zero", "Completed: 0/8 items", GradeStarted},
		{"plain prose is no-data", "Everything looked fine on arrival.", GradeNoData},
		{"empty body is no-data", "", GradeNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.body); got.Grade != tt.want {
				t.Errorf("Decode(%q).Grade = %s, want %s", tt.body, got.Grade, tt.want)
			}
		})
	}
}

func TestDecodeFirstMatchWins(t *testing.T) {
	body := "Completed: 2/4 items\nlater note says Completed: 4/4 items"
	got := Decode(body)
	if got.Completed != 2 || got.Total != 4 {
		t.Errorf("counts = %d/%d, want first match 2/4", got.Completed, got.Total)
	}
}

func TestDecodeLegacyBodyWithoutMarker(t *testing.T) {
	// bodies written before the format marker existed must still parse
	body := "Routine inspection.\n\nCompleted: 5/5 items\n✓ everything"
	got := Decode(body)
	if got.Grade != GradeComplete {
		t.Errorf("Grade = %s, want %s", got.Grade, GradeComplete)
	}
}
