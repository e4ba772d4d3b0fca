package systems

import (
	"testing"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
)

func playerBullets(em *ecs.EntityManager) []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.PlayerBulletComponent](em)
}

func TestPlayerMovement(t *testing.T) {
	tests := []struct {
		name  string
		input game.InputState
		dt    float64
		wantX float64
		wantY float64
	}{
		{"向右移动", game.InputState{Right: true}, 0.1, 415, 540},
		{"向上移动", game.InputState{Up: true}, 0.1, 385, 510},
		{"斜向移动", game.InputState{Left: true, Up: true}, 0.1, 355, 510},
		{"左边界限制", game.InputState{Left: true}, 5, 0, 540},
		{"右边界限制", game.InputState{Right: true}, 5, 770, 540},
		{"下边界限制", game.InputState{Down: true}, 1, 385, 560},
		{"上边界限制", game.InputState{Up: true}, 5, 385, 0},
		{"相反方向抵消", game.InputState{Left: true, Right: true}, 0.1, 385, 540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			id := w.spawnPlayer(t)

			w.player.SetInput(tt.input)
			w.player.Update(tt.dt)

			pos := position(t, w.em, id)
			if abs(pos.X-tt.wantX) > epsilon || abs(pos.Y-tt.wantY) > epsilon {
				t.Errorf("Expected (%f, %f), got (%f, %f)", tt.wantX, tt.wantY, pos.X, pos.Y)
			}
		})
	}
}

func TestPlayerFire(t *testing.T) {
	type shot struct{ x, y, angle float64 }

	tests := []struct {
		name       string
		powerLevel int
		want       []shot
	}{
		{"火力1 居中单发", 1, []shot{{398, 540, 0}}},
		{"火力2 双发", 2, []shot{{390, 545, 0}, {410, 545, 0}}},
		{"火力3 三发", 3, []shot{{398, 540, 0}, {390, 550, -0.3}, {410, 550, 0.3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			id := w.spawnPlayer(t)
			player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, id)
			player.PowerLevel = tt.powerLevel

			w.player.SetInput(game.InputState{Fire: true})
			w.player.Update(0.3)

			bullets := playerBullets(w.em)
			if len(bullets) != len(tt.want) {
				t.Fatalf("Expected %d bullets, got %d", len(tt.want), len(bullets))
			}
			for i, bid := range bullets {
				pos := position(t, w.em, bid)
				bullet, _ := ecs.GetComponent[*components.PlayerBulletComponent](w.em, bid)
				vel, _ := ecs.GetComponent[*components.VelocityComponent](w.em, bid)
				if pos.X != tt.want[i].x || pos.Y != tt.want[i].y {
					t.Errorf("bullet %d: expected (%f, %f), got (%f, %f)", i, tt.want[i].x, tt.want[i].y, pos.X, pos.Y)
				}
				if bullet.AngleOffset != tt.want[i].angle {
					t.Errorf("bullet %d: expected angle offset %f, got %f", i, tt.want[i].angle, bullet.AngleOffset)
				}
				if (tt.want[i].angle != 0) != (vel.VX != 0) {
					t.Errorf("bullet %d: lateral drift mismatch, VX=%f", i, vel.VX)
				}
			}
			if player.ShootTimer != 0 {
				t.Errorf("Expected shoot timer reset, got %f", player.ShootTimer)
			}
		})
	}
}

func TestPlayerShootCooldown(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t)
	w.player.SetInput(game.InputState{Fire: true})

	w.player.Update(0.2)
	if n := len(playerBullets(w.em)); n != 0 {
		t.Fatalf("Expected no bullets before cooldown, got %d", n)
	}
	w.player.Update(0.2)
	if n := len(playerBullets(w.em)); n != 1 {
		t.Fatalf("Expected 1 bullet after cooldown, got %d", n)
	}
	w.player.Update(0.2)
	if n := len(playerBullets(w.em)); n != 1 {
		t.Errorf("Expected cooldown to restart after firing, got %d bullets", n)
	}

	t.Run("未按开火键时冷却继续累计", func(t *testing.T) {
		w := newTestWorld(t)
		id := w.spawnPlayer(t)
		w.player.Update(5)
		player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, id)
		if player.ShootTimer != 5 {
			t.Errorf("Expected shoot timer 5, got %f", player.ShootTimer)
		}
		w.player.SetInput(game.InputState{Fire: true})
		w.player.Update(0)
		if n := len(playerBullets(w.em)); n != 1 {
			t.Errorf("Expected immediate shot with charged cooldown, got %d", n)
		}
	})
}

func TestPlayerInvincibility(t *testing.T) {
	w := newTestWorld(t)
	id := w.spawnPlayer(t)
	player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, id)
	visual, _ := ecs.GetComponent[*components.VisualComponent](w.em, id)

	if !w.player.TakeDamage(id) {
		t.Fatal("Expected damage to apply")
	}
	if !player.Invincible || player.InvincibleTimer != 0 {
		t.Fatalf("Expected invincible with timer 0, got %+v", player)
	}

	w.player.Update(0.05)
	if !visual.Visible {
		t.Error("Expected visible in the first half of the blink period")
	}
	w.player.Update(0.1)
	if visual.Visible {
		t.Error("Expected hidden in the second half of the blink period")
	}

	w.player.Update(2.0)
	if player.Invincible {
		t.Error("Expected invincibility to end after 2.0s")
	}
	if !visual.Visible {
		t.Error("Expected visibility forced on when invincibility ends")
	}
}

func TestPlayerTakeDamage(t *testing.T) {
	w := newTestWorld(t)
	id := w.spawnPlayer(t)
	player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, id)
	player.PowerLevel = 3
	w.score.ContinueCombo()
	rec := w.record(event.PlayerHit)

	if !w.player.TakeDamage(id) {
		t.Fatal("Expected damage to apply")
	}
	if w.score.Lives() != 2 {
		t.Errorf("Expected lives 2, got %d", w.score.Lives())
	}
	if w.score.Combo() != 0 {
		t.Errorf("Expected combo reset on damage, got %d", w.score.Combo())
	}
	if player.PowerLevel != 2 {
		t.Errorf("Expected power level 2, got %d", player.PowerLevel)
	}

	if w.player.TakeDamage(id) {
		t.Error("Damage should be ignored while invincible")
	}
	if w.score.Lives() != 2 {
		t.Errorf("Lives should not change while invincible, got %d", w.score.Lives())
	}

	if len(rec.events) != 1 {
		t.Fatalf("Expected 1 PlayerHit event, got %d", len(rec.events))
	}
	data := rec.events[0].Data.(event.PlayerHitData)
	if data.LivesLeft != 2 || data.PowerLevel != 2 {
		t.Errorf("Unexpected event data %+v", data)
	}

	t.Run("火力最低为1", func(t *testing.T) {
		w := newTestWorld(t)
		id := w.spawnPlayer(t)
		w.player.TakeDamage(id)
		player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, id)
		if player.PowerLevel != 1 {
			t.Errorf("Expected power level to stay at 1, got %d", player.PowerLevel)
		}
	})
}

func TestPlayerPowerUp(t *testing.T) {
	w := newTestWorld(t)
	id := w.spawnPlayer(t)
	player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, id)

	w.player.PowerUp(id)
	w.player.PowerUp(id)
	w.player.PowerUp(id)
	if player.PowerLevel != 3 {
		t.Fatalf("Expected power level capped at 3, got %d", player.PowerLevel)
	}

	w.player.Update(9.9)
	if player.PowerLevel != 3 {
		t.Fatalf("Expected power level 3 before duration, got %d", player.PowerLevel)
	}

	// 拾取重置计时
	w.player.PowerUp(id)
	if player.PowerTimer != 0 {
		t.Errorf("Expected power timer reset on pickup, got %f", player.PowerTimer)
	}

	w.player.Update(9.9)
	if player.PowerLevel != 3 {
		t.Errorf("Expected power level 3 after refreshed timer, got %d", player.PowerLevel)
	}
	w.player.Update(0.2)
	if player.PowerLevel != 1 || player.PowerTimer != 0 {
		t.Errorf("Expected decay to level 1 with timer reset, got level %d timer %f", player.PowerLevel, player.PowerTimer)
	}
}

func TestPlayerSystemWithoutPlayer(t *testing.T) {
	w := newTestWorld(t)
	w.player.SetInput(game.InputState{Fire: true, Left: true})
	w.player.Update(1)

	if w.em.EntityCount() != 0 {
		t.Errorf("Expected no entities without a player, got %d", w.em.EntityCount())
	}
	if w.player.TakeDamage(ecs.EntityID(99)) {
		t.Error("TakeDamage on a missing player should be a no-op")
	}
	w.player.PowerUp(ecs.EntityID(99))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
