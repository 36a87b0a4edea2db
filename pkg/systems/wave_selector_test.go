package systems

import (
	"testing"

	"github.com/decker502/wavegate/pkg/wave"
)

func TestWaveSelector_Next(t *testing.T) {
	table := wave.NewTable(
		wave.New(wave.KindNormal, 1, 0),
		wave.New(wave.KindNormal, 1, 3),
		wave.New(wave.KindBoss, 1, 1),
	)

	tests := []struct {
		name       string
		skip       bool
		from       int
		difficulty int
		want       int
	}{
		{"顺序模式原样返回", false, 1, 0, 1},
		{"顺序模式负数归零", false, -2, 0, 0},
		{"当前即可进入", true, 0, 0, 0},
		{"跳过一个", true, 1, 1, 2},
		{"难度足够不跳过", true, 1, 3, 1},
		{"全部不可进入", true, 1, 0, 3},
		{"越界", true, 3, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := NewWaveSelector(table, tt.skip)
			if got := selector.Next(tt.from, tt.difficulty); got != tt.want {
				t.Errorf("Next(%d, %d) = %d, want %d", tt.from, tt.difficulty, got, tt.want)
			}
		})
	}
}

func TestWaveSelector_CountEligible(t *testing.T) {
	table := wave.NewTable(
		wave.New(wave.KindNormal, 1, 0),
		wave.New(wave.KindNormal, 1, 3),
		wave.New(wave.KindBoss, 1, 1),
	)
	selector := NewWaveSelector(table, true)

	for difficulty, want := range map[int]int{0: 1, 1: 2, 3: 3} {
		if got := selector.CountEligible(difficulty); got != want {
			t.Errorf("CountEligible(%d) = %d, want %d", difficulty, got, want)
		}
	}
}
