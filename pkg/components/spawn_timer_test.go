package components

import "testing"

// TestSpawnTimerComponent_ZeroValue 测试组件零值处于停止状态
func TestSpawnTimerComponent_ZeroValue(t *testing.T) {
	timer := &SpawnTimerComponent{}

	if timer.IsActive {
		t.Error("Expected zero-value timer to be inactive")
	}
	if timer.CountdownCs != 0 || timer.IntervalCs != 0 {
		t.Errorf("Expected zero countdown/interval, got %d/%d", timer.CountdownCs, timer.IntervalCs)
	}
	if timer.FiredCount != 0 {
		t.Errorf("Expected FiredCount = 0, got %d", timer.FiredCount)
	}
}

func TestButtonComponent_Contains(t *testing.T) {
	b := &ButtonComponent{X: 10, Y: 20, Width: 100, Height: 30}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"左上角", 10, 20, true},
		{"中心", 60, 35, true},
		{"右边界外", 110, 35, false},
		{"下边界外", 60, 50, false},
		{"左侧外", 9.9, 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
