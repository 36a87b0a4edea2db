package entities

import (
	"testing"

	"github.com/decker502/wavegate/pkg/components"
	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/ecs"
)

func TestEnemyKillNotifiesOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	enemy := NewEnemy(em, em.CreateEntity(), "grunt")

	calls := 0
	enemy.OnDeath(func(e *Enemy) {
		calls++
		// 回调中重入 Kill 不应再次通知
		e.Kill()
	})

	enemy.Kill()
	enemy.Kill()

	if calls != 1 {
		t.Errorf("death handler called %d times, want 1", calls)
	}
	if enemy.IsAlive() {
		t.Error("enemy should be dead after Kill()")
	}
	if !em.IsMarkedForDestroy(enemy.ID()) {
		t.Error("entity should be marked for destroy")
	}
}

func TestEnemyUnsubscribe(t *testing.T) {
	enemy := NewEnemy(nil, 7, "grunt")

	var order []string
	unsubA := enemy.OnDeath(func(*Enemy) { order = append(order, "a") })
	enemy.OnDeath(func(*Enemy) { order = append(order, "b") })

	if enemy.SubscriberCount() != 2 {
		t.Fatalf("SubscriberCount() = %d, want 2", enemy.SubscriberCount())
	}

	unsubA()
	unsubA() // 重复取消是安全的

	enemy.Kill()

	if len(order) != 1 || order[0] != "b" {
		t.Errorf("notified handlers = %v, want [b]", order)
	}
	if enemy.SubscriberCount() != 0 {
		t.Errorf("subscriptions should be released after death, got %d", enemy.SubscriberCount())
	}
}

func TestArchetypeSpecProduce(t *testing.T) {
	em := ecs.NewEntityManager()
	spec := NewArchetypeSpec(em, "brute", config.EnemyArchetype{
		Name:   "Brute",
		Health: 4,
		Radius: 16,
		Glyph:  "B",
		Color:  "#8050C0",
	})

	a := spec.Produce()
	b := spec.Produce()

	if a.ID() == b.ID() {
		t.Fatal("each Produce() call must create a distinct entity")
	}
	if a.Archetype() != "brute" || spec.Archetype() != "brute" {
		t.Errorf("archetype = %q/%q, want brute", a.Archetype(), spec.Archetype())
	}
	if !a.IsAlive() {
		t.Error("produced enemy should be alive")
	}

	enemyComp, ok := ecs.GetComponent[*components.EnemyComponent](em, a.ID())
	if !ok {
		t.Fatal("EnemyComponent missing")
	}
	if enemyComp.Glyph != 'B' || enemyComp.Color != [4]uint8{0x80, 0x50, 0xC0, 0xFF} {
		t.Errorf("unexpected enemy component: %+v", enemyComp)
	}

	health, ok := ecs.GetComponent[*components.HealthComponent](em, a.ID())
	if !ok {
		t.Fatal("HealthComponent missing")
	}
	if health.CurrentHealth != 4 || health.MaxHealth != 4 {
		t.Errorf("health = %d/%d, want 4/4", health.CurrentHealth, health.MaxHealth)
	}

	// 修改一个实体的血量不影响另一个
	health.CurrentHealth = 1
	other, _ := ecs.GetComponent[*components.HealthComponent](em, b.ID())
	if other.CurrentHealth != 4 {
		t.Errorf("produced enemies share state: other health = %d", other.CurrentHealth)
	}
}
