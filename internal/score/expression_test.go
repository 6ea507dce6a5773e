package score

import (
	"strings"
	"testing"
)

func TestExpression_IntroductionTiers(t *testing.T) {
	pad := func(prefix string, runes int) string {
		return prefix + strings.Repeat("x", runes-len(prefix))
	}
	specific := "I design architecture and debug performance problems. "

	cases := []struct {
		name  string
		intro string
		want  int
	}{
		{"long and specific", pad(specific, 320), 8},
		{"long but generic", strings.Repeat("y", 320), 6},
		{"medium", strings.Repeat("y", 200), 6},
		{"short", strings.Repeat("y", 100), 4},
		{"minimal", "hi", 2},
		{"empty", "", 0},
	}
	for _, tc := range cases {
		if d := Expression(Snapshot{Introduction: tc.intro}); d.Score != tc.want {
			t.Errorf("%s: score = %d, want %d", tc.name, d.Score, tc.want)
		}
	}
}

func TestExpression_LongSpecificIntroWithFewTerms(t *testing.T) {
	// Two distinct terms is not specific; length alone caps at 6.
	intro := "I like to design and learn. " + strings.Repeat("x", 300)
	if d := Expression(Snapshot{Introduction: intro}); d.Score != 6 {
		t.Fatalf("score = %d, want 6 for a long intro with fewer than 3 specific terms", d.Score)
	}
}

func TestExpression_DescriptionCompleteness(t *testing.T) {
	long := Project{Description: strings.Repeat("d", 100)}
	short := Project{Description: "brief"}

	cases := []struct {
		name string
		ps   []Project
		want int
	}{
		{"all complete", []Project{long, long}, 7},
		{"some complete", []Project{long, short}, 4},
		{"none complete", []Project{short, short}, 1},
	}
	for _, tc := range cases {
		if d := Expression(Snapshot{Projects: tc.ps}); d.Score != tc.want {
			t.Errorf("%s: score = %d, want %d", tc.name, d.Score, tc.want)
		}
	}

	// No projects at all scores zero on this criterion (with a message).
	d := Expression(Snapshot{})
	if d.Score != 0 {
		t.Fatalf("no projects: score = %d, want 0", d.Score)
	}
}

func TestExpression_RolePresence(t *testing.T) {
	withRole := Project{Description: "x", Role: "Backend developer"}
	noRole := Project{Description: "x"}

	// Descriptions are short, so the completeness criterion contributes 1.
	if d := Expression(Snapshot{Projects: []Project{withRole, withRole}}); d.Score != 6 {
		t.Errorf("all roles: score = %d, want 6", d.Score)
	}
	if d := Expression(Snapshot{Projects: []Project{withRole, noRole}}); d.Score != 4 {
		t.Errorf("some roles: score = %d, want 4", d.Score)
	}
	if d := Expression(Snapshot{Projects: []Project{noRole, noRole}}); d.Score != 1 {
		t.Errorf("no roles: score = %d, want 1", d.Score)
	}
}
