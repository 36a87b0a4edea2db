package wave

import (
	"math/rand"
	"testing"

	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/ecs"
	"github.com/decker502/wavegate/pkg/entities"
)

// stubSpec 测试用原型，记录 Produce 次数
type stubSpec struct {
	id       string
	produced int
}

func (s *stubSpec) Archetype() string { return s.id }

func (s *stubSpec) Produce() *entities.Enemy {
	s.produced++
	return entities.NewEnemy(nil, ecs.EntityID(s.produced), s.id)
}

// fixedRandom 总是返回固定索引
type fixedRandom int

func (f fixedRandom) Intn(n int) int { return int(f) % n }

func TestPickRandomSpec(t *testing.T) {
	a, b, c := &stubSpec{id: "a"}, &stubSpec{id: "b"}, &stubSpec{id: "c"}

	t.Run("空原型集合", func(t *testing.T) {
		w := New(KindNormal, 3, 0)
		spec, ok := w.PickRandomSpec(fixedRandom(0))
		if ok || spec != nil {
			t.Errorf("PickRandomSpec() = (%v, %v), want (nil, false)", spec, ok)
		}
	})

	t.Run("固定索引", func(t *testing.T) {
		w := New(KindNormal, 3, 0, a, b, c)
		spec, ok := w.PickRandomSpec(fixedRandom(1))
		if !ok || spec.Archetype() != "b" {
			t.Errorf("PickRandomSpec() = %v, want b", spec)
		}
	})

	t.Run("均匀覆盖所有原型", func(t *testing.T) {
		w := New(KindNormal, 3, 0, a, b, c)
		rng := rand.New(rand.NewSource(42))
		seen := map[string]int{}
		for i := 0; i < 3000; i++ {
			spec, _ := w.PickRandomSpec(rng)
			seen[spec.Archetype()]++
		}
		for _, id := range []string{"a", "b", "c"} {
			// 期望约 1000 次，留足余量
			if seen[id] < 800 || seen[id] > 1200 {
				t.Errorf("archetype %s picked %d times out of 3000", id, seen[id])
			}
		}
	})
}

func TestWaveGates(t *testing.T) {
	tests := []struct {
		name         string
		kind         Kind
		minDiff      int
		difficulty   int
		wantEligible bool
		wantOptional bool
	}{
		{"普通波刚好达到门槛", KindNormal, 2, 2, true, false},
		{"普通波低于门槛", KindNormal, 2, 1, false, false},
		{"可选波", KindOptional, 0, 0, true, true},
		{"首领波高于门槛", KindBoss, 1, 5, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(tt.kind, 1, tt.minDiff)
			if got := w.IsEligible(tt.difficulty); got != tt.wantEligible {
				t.Errorf("IsEligible(%d) = %v, want %v", tt.difficulty, got, tt.wantEligible)
			}
			if got := w.IsOptional(); got != tt.wantOptional {
				t.Errorf("IsOptional() = %v, want %v", got, tt.wantOptional)
			}
		})
	}
}

func TestNewClampsNegativeTarget(t *testing.T) {
	if got := New(KindNormal, -5, 0).TargetCount(); got != 0 {
		t.Errorf("TargetCount() = %d, want 0", got)
	}
}

func TestWaveSpecsIsCopy(t *testing.T) {
	a, b := &stubSpec{id: "a"}, &stubSpec{id: "b"}
	w := New(KindNormal, 1, 0, a)

	specs := w.Specs()
	specs[0] = b

	if got, _ := w.PickRandomSpec(fixedRandom(0)); got.Archetype() != "a" {
		t.Error("mutating Specs() result must not change the wave")
	}
}

func TestTable(t *testing.T) {
	table := NewTable(New(KindOptional, 2, 0), New(KindNormal, 1, 0))

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if !table.HasNext(0) {
		t.Error("HasNext(0) should be true")
	}
	if table.HasNext(1) {
		t.Error("HasNext(1) should be false on the last wave")
	}
	if !table.Current(0).IsOptional() {
		t.Error("Current(0) should be the optional wave")
	}

	for _, index := range []int{-1, 2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Current(%d) should panic", index)
				}
			}()
			table.Current(index)
		}()
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"normal", KindNormal, false},
		{"", KindNormal, false},
		{"boss", KindBoss, false},
		{"optional", KindOptional, false},
		{"secret", KindNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, err=%v)", tt.in, got, err, tt.want, tt.wantErr)
		}
		if !tt.wantErr && tt.in != "" && got.String() != tt.in {
			t.Errorf("Kind(%d).String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}

func TestBuildTable(t *testing.T) {
	catalog := &config.EnemyCatalog{Enemies: map[string]config.EnemyArchetype{
		"grunt": {Name: "Grunt", Health: 1, Color: "#FFFFFF"},
		"brute": {Name: "Brute", Health: 4, Color: "#FFFFFF"},
	}}

	created := map[string]int{}
	factory := func(id string, archetype config.EnemyArchetype) EnemySpec {
		created[id]++
		return &stubSpec{id: id}
	}

	t.Run("共享原型", func(t *testing.T) {
		created = map[string]int{}
		level := &config.LevelConfig{Waves: []config.WaveConfig{
			{Kind: "optional", Count: 2, Enemies: []string{"grunt"}},
			{Kind: "normal", Count: 3, MinDifficulty: 2, Enemies: []string{"grunt", "brute"}},
			{Kind: "boss", Count: 0},
		}}

		table, err := BuildTable(level, catalog, factory)
		if err != nil {
			t.Fatalf("BuildTable() failed: %v", err)
		}
		if table.Len() != 3 {
			t.Fatalf("Len() = %d, want 3", table.Len())
		}
		if created["grunt"] != 1 || created["brute"] != 1 {
			t.Errorf("each archetype should be created once, got %v", created)
		}

		w0, w1 := table.Current(0), table.Current(1)
		if !w0.IsOptional() || w0.TargetCount() != 2 {
			t.Errorf("wave 0 = %v/%d, want optional/2", w0.Kind(), w0.TargetCount())
		}
		if w1.MinDifficulty() != 2 || len(w1.Specs()) != 2 {
			t.Errorf("wave 1 minDifficulty=%d specs=%d", w1.MinDifficulty(), len(w1.Specs()))
		}
		if w0.Specs()[0] != w1.Specs()[0] {
			t.Error("waves referencing the same archetype should share one spec")
		}
		if table.Current(2).Kind() != KindBoss {
			t.Errorf("wave 2 kind = %v, want boss", table.Current(2).Kind())
		}
	})

	t.Run("未知原型", func(t *testing.T) {
		level := &config.LevelConfig{Waves: []config.WaveConfig{
			{Kind: "normal", Count: 1, Enemies: []string{"ghost"}},
		}}
		if _, err := BuildTable(level, catalog, factory); err == nil {
			t.Error("expected error for unknown archetype")
		}
	})

	t.Run("ECS工厂", func(t *testing.T) {
		em := ecs.NewEntityManager()
		level := &config.LevelConfig{Waves: []config.WaveConfig{
			{Kind: "normal", Count: 1, Enemies: []string{"brute"}},
		}}
		table, err := BuildTable(level, catalog, ECSSpecFactory(em))
		if err != nil {
			t.Fatalf("BuildTable() failed: %v", err)
		}
		spec, _ := table.Current(0).PickRandomSpec(fixedRandom(0))
		enemy := spec.Produce()
		if !em.Exists(enemy.ID()) {
			t.Error("ECS spec should create an entity in the manager")
		}
	})
}
