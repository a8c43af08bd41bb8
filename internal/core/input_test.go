package core

import "testing"

func TestInputFrameDirection(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		dx, dy  int
	}{
		{"none", nil, 0, 0},
		{"left", []Action{ActionLeft}, -1, 0},
		{"right", []Action{ActionRight}, 1, 0},
		{"up", []Action{ActionUp}, 0, -1},
		{"down", []Action{ActionDown}, 0, 1},
		{"up and right", []Action{ActionUp, ActionRight}, 1, -1},
		{"left and right cancel", []Action{ActionLeft, ActionRight}, 0, 0},
		{"all four cancel", []Action{ActionLeft, ActionRight, ActionUp, ActionDown}, 0, 0},
		{"non-movement ignored", []Action{ActionPause, ActionDown}, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			dx, dy := f.Direction()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Direction() = (%d, %d), expected (%d, %d)", dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestInputFrameClear(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionUp) {
		t.Fatal("zero frame should have no actions")
	}

	f.Set(ActionUp)
	f.Set(ActionPause)
	if !f.Has(ActionUp) || !f.Has(ActionPause) {
		t.Fatal("Set actions should be reported by Has")
	}

	f.Clear()
	if f.Has(ActionUp) || f.Has(ActionPause) {
		t.Error("Clear should remove all actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" || ActionRight.String() != "Right" {
		t.Error("unexpected action names")
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown actions should stringify as Unknown")
	}
}
