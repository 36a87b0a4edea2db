package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/wavegate/pkg/ecs"
	"github.com/decker502/wavegate/pkg/entities"
)

func TestEnemyRegistry_AddIgnoresDuplicates(t *testing.T) {
	ids := &idSource{}
	registry := NewEnemyRegistry()
	enemy := ids.newEnemy("grunt")

	registry.Add(enemy)
	registry.Add(enemy)

	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}
	if enemy.SubscriberCount() != 1 {
		t.Errorf("duplicate Add should not subscribe twice, got %d subscriptions", enemy.SubscriberCount())
	}
	if !registry.Contains(enemy.ID()) {
		t.Error("Contains() should be true after Add")
	}
}

func TestEnemyRegistry_AddIgnoresDeadEnemy(t *testing.T) {
	ids := &idSource{}
	registry := NewEnemyRegistry()
	enemy := ids.newEnemy("grunt")
	enemy.Kill()

	registry.Add(enemy)
	if !registry.IsEmpty() {
		t.Error("dead enemy should not be registered")
	}
}

func TestEnemyRegistry_DeathRemovesAndNotifies(t *testing.T) {
	ids := &idSource{}
	registry := NewEnemyRegistry()

	var removed []ecs.EntityID
	registry.Subscribe(func(id ecs.EntityID) { removed = append(removed, id) })

	a, b := ids.newEnemy("grunt"), ids.newEnemy("brute")
	registry.Add(a)
	registry.Add(b)

	b.Kill()
	b.Kill()

	if !reflect.DeepEqual(removed, []ecs.EntityID{b.ID()}) {
		t.Errorf("removed = %v, want [%d]", removed, b.ID())
	}
	if registry.Contains(b.ID()) || !registry.Contains(a.ID()) {
		t.Error("only the dead enemy should leave the registry")
	}
	if !reflect.DeepEqual(registry.IDs(), []ecs.EntityID{a.ID()}) {
		t.Errorf("IDs() = %v, want [%d]", registry.IDs(), a.ID())
	}
}

func TestEnemyRegistry_RemoveAll(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"空登记表", 0},
		{"单个敌人", 1},
		{"多个敌人", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := &idSource{}
			registry := NewEnemyRegistry()

			events := map[ecs.EntityID]int{}
			total := 0
			registry.Subscribe(func(id ecs.EntityID) {
				events[id]++
				total++
			})

			var enemies []*entities.Enemy
			for i := 0; i < tt.count; i++ {
				enemy := ids.newEnemy("grunt")
				enemies = append(enemies, enemy)
				registry.Add(enemy)
			}

			registry.RemoveAll()

			if total != tt.count {
				t.Errorf("got %d removal events, want %d", total, tt.count)
			}
			for _, enemy := range enemies {
				if events[enemy.ID()] != 1 {
					t.Errorf("enemy %d got %d events, want exactly 1", enemy.ID(), events[enemy.ID()])
				}
				if enemy.IsAlive() {
					t.Errorf("enemy %d should be killed", enemy.ID())
				}
				if enemy.SubscriberCount() != 0 {
					t.Errorf("enemy %d still has %d subscriptions", enemy.ID(), enemy.SubscriberCount())
				}
			}
			if !registry.IsEmpty() {
				t.Errorf("registry should be empty, Count() = %d", registry.Count())
			}

			// 再次调用是空操作
			registry.RemoveAll()
			if total != tt.count {
				t.Errorf("second RemoveAll raised extra events: %d", total-tt.count)
			}
		})
	}
}

func TestEnemyRegistry_RemoveAllKeepsExternalDeathSubscribers(t *testing.T) {
	ids := &idSource{}
	registry := NewEnemyRegistry()
	enemy := ids.newEnemy("grunt")

	externalCalls := 0
	enemy.OnDeath(func(*entities.Enemy) { externalCalls++ })
	registry.Add(enemy)

	registry.RemoveAll()

	if externalCalls != 1 {
		t.Errorf("external death subscriber called %d times, want 1", externalCalls)
	}
}

func TestEnemyRegistry_Unsubscribe(t *testing.T) {
	ids := &idSource{}
	registry := NewEnemyRegistry()

	calls := 0
	unsubscribe := registry.Subscribe(func(ecs.EntityID) { calls++ })
	unsubscribe()
	unsubscribe()

	enemy := ids.newEnemy("grunt")
	registry.Add(enemy)
	enemy.Kill()

	if calls != 0 {
		t.Errorf("unsubscribed handler called %d times", calls)
	}
}
