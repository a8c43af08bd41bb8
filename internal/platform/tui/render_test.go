package tui

import (
	"regexp"
	"testing"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.SetColored(0, 0, '#', core.ColorWall)
	s.SetColored(1, 0, '#', core.ColorWall)
	s.SetColored(2, 0, '@', core.ColorPlayer)
	s.DrawText(0, 1, "ok", core.ColorHUD)

	got := ansiSeq.ReplaceAllString(RenderScreen(s), "")
	want := "##@  \nok   "
	if got != want {
		t.Errorf("RenderScreen() = %q, want %q", got, want)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); ansiSeq.ReplaceAllString(got, "") != "x" {
		t.Errorf("styleFor(unknown).Render = %q", got)
	}
}
