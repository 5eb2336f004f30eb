package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-peake/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestBox(t *testing.T) {
	out := Box([]game.StatSection{
		{Lines: []game.StatLine{{Value: "Aria", Center: true}}},
		{Header: "Attributes", Lines: []game.StatLine{{Value: "Strength: 12"}}},
	}, 20)

	exp := strings.Join([]string{
		"+------------------+",
		"|       Aria       |",
		"+------------------+",
		"| Attributes       |",
		"| Strength: 12     |",
		"+------------------+",
	}, "\n")
	testutil.AssertEqual(t, "box", out, exp)
}

func TestBox_Truncates(t *testing.T) {
	out := Box([]game.StatSection{
		{Lines: []game.StatLine{{Value: "a very long line that will not fit"}}},
	}, 12)

	for _, line := range strings.Split(out, "\n") {
		testutil.AssertEqual(t, "width", len(line), 12)
	}
}

func TestRender(t *testing.T) {
	tests := map[string]struct {
		name     string
		data     any
		contains []string
		excludes []string
	}{
		"welcome": {
			name:     TemplateWelcome,
			data:     struct{ Online int }{Online: 0},
			contains: []string{"1. Login", "2. Create New Character", "3. Quit", "Enter your choice (1-3): "},
			excludes: []string{"in the realm"},
		},
		"welcome with players": {
			name:     TemplateWelcome,
			data:     struct{ Online int }{Online: 2},
			contains: []string{"2 adventurers are in the realm."},
		},
		"race menu": {
			name: TemplateRaceMenu,
			data: struct{ Races []*game.Race }{Races: game.Races()},
			contains: []string{
				"=== Choose Your Race ===",
				"1. Human",
				"6. Gnome",
				"Enter your choice (1-6): ",
			},
		},
		"class menu": {
			name: TemplateClassMenu,
			data: struct{ Classes []*game.Class }{Classes: game.Classes()},
			contains: []string{
				"=== Choose Your Class ===",
				"1. Warrior",
				"Primary Stat: Strength",
				"Starting Skills: Sword Mastery, Shield Block, Battle Cry",
				"Enter your choice (1-8): ",
			},
		},
		"who empty": {
			name:     TemplateWho,
			data:     struct{ Players []game.Sheet }{},
			contains: []string{"No other players are currently online."},
			excludes: []string{"=== Online Players ==="},
		},
		"who": {
			name: TemplateWho,
			data: struct{ Players []game.Sheet }{Players: []game.Sheet{
				{Name: "Bob", Level: 2, Race: "Dwarf", Class: "Cleric"},
			}},
			contains: []string{"=== Online Players ===", "- Bob (Level 2 Dwarf Cleric)"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := Render(tt.name, tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, out)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out, s) {
					t.Errorf("expected output not to contain %q, got:\n%s", s, out)
				}
			}
			testutil.AssertEqual(t, "trailing newline", strings.HasSuffix(out, "\n"), false)
		})
	}
}

func TestWrap(t *testing.T) {
	out := WrapWidth("the quick brown fox jumps", 10)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q longer than 10", line)
		}
	}
}
