package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

type fakeGame struct{ id string }

func (g *fakeGame) ID() string { return g.id }
func (g *fakeGame) Title() string { return strings.ToUpper(g.id) }
func (g *fakeGame) Reset(core.RuntimeConfig) {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen) {}
func (g *fakeGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_fake", func() Game { return &fakeGame{id: "zz_fake"} })

	if !Exists("zz_fake") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("zz_fake")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz_fake" {
		t.Errorf("Create() returned %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_fake" {
			found = info.Title == "ZZ_FAKE"
		}
	}
	if !found {
		t.Error("List() should include the game with its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("expected an error for an unknown game")
	}
	if Exists("no_such_game") {
		t.Error("Exists() reported an unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })
}

func TestListSorted(t *testing.T) {
	Register("zz_b", func() Game { return &fakeGame{id: "zz_b"} })
	Register("zz_a", func() Game { return &fakeGame{id: "zz_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
}
