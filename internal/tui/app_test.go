package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestQuitKeys(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.send(runes("q"))
	if !h.quit {
		t.Error("q should quit from the list")
	}
}

func TestQuitKeyIsTextWhileTyping(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.send(runes("2"))
	h.typeText("quiet 1")
	if h.quit {
		t.Fatal("q quit while a field had focus")
	}
	if got := h.add().title.Value(); got != "quiet 1" {
		t.Errorf("title: got %q", got)
	}
	if h.app.env.active != routeAdd {
		t.Error("digits navigated away while typing")
	}

	h.send(keyCtrlC)
	if !h.quit {
		t.Error("ctrl+c should always quit")
	}
}

func TestNavigationTabs(t *testing.T) {
	h := newHarness(t)
	h.start()

	for _, tc := range []struct {
		key  string
		want route
	}{
		{"3", routeCategories},
		{"1", routeTodos},
		{"2", routeAdd},
	} {
		h.send(keyEsc) // leave any focused field
		h.send(runes(tc.key))
		if h.app.env.active != tc.want {
			t.Errorf("after %q: on %v, want %v", tc.key, h.app.env.active, tc.want)
		}
	}
	if v := h.app.View(); !strings.Contains(v, "Add todo") {
		t.Errorf("header missing:\n%s", v)
	}
}

func TestWindowSize(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if h.app.env.width != 120 || h.app.env.height != 40 {
		t.Errorf("size: %dx%d", h.app.env.width, h.app.env.height)
	}
	if h.app.env.bodyHeight() != 34 {
		t.Errorf("body height: %d", h.app.env.bodyHeight())
	}
}
