package scenes

import (
	"testing"

	"github.com/decker502/wavegate/pkg/components"
)

func TestUpdateButtons(t *testing.T) {
	clicks := map[string]int{}
	newButton := func(name string, x float64, enabled bool) *components.ButtonComponent {
		return &components.ButtonComponent{
			X: x, Y: 0, Width: 50, Height: 20,
			Text:    name,
			Enabled: enabled,
			OnClick: func() { clicks[name]++ },
		}
	}
	ok := newButton("ok", 0, true)
	disabled := newButton("disabled", 100, false)
	buttons := []*components.ButtonComponent{ok, disabled}

	tests := []struct {
		name         string
		pointer      pointerState
		wantConsumed bool
		wantHover    bool
	}{
		{"悬停不点击", pointerState{X: 10, Y: 10}, false, true},
		{"点击可用按钮", pointerState{X: 10, Y: 10, Released: true}, true, true},
		{"点击禁用按钮", pointerState{X: 110, Y: 10, Released: true}, true, false},
		{"点击空白处", pointerState{X: 300, Y: 10, Released: true}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := updateButtons(buttons, tt.pointer); got != tt.wantConsumed {
				t.Errorf("updateButtons() = %v, want %v", got, tt.wantConsumed)
			}
			if ok.IsHovered != tt.wantHover {
				t.Errorf("ok.IsHovered = %v, want %v", ok.IsHovered, tt.wantHover)
			}
			if disabled.IsHovered {
				t.Error("disabled button should never be hovered")
			}
		})
	}

	if clicks["ok"] != 1 || clicks["disabled"] != 0 {
		t.Errorf("clicks = %v, want ok=1 disabled=0", clicks)
	}
}

func TestRGBA(t *testing.T) {
	c := rgba([4]uint8{1, 2, 3, 4})
	if c.R != 1 || c.G != 2 || c.B != 3 || c.A != 4 {
		t.Errorf("rgba() = %v", c)
	}
}
