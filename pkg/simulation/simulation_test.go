package simulation

import (
	"errors"
	"image/color"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/entities"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/pattern"
	"github.com/decker502/spacedefender/pkg/systems"
	"github.com/decker502/spacedefender/pkg/types"
)

const epsilon = 1e-9

type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) {
	r.events = append(r.events, e)
}

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	s, err := NewSimulation(nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return s
}

func startedSimulation(t *testing.T) *Simulation {
	t.Helper()
	s := newTestSimulation(t)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return s
}

func TestNewSimulation(t *testing.T) {
	s := newTestSimulation(t)

	if s.Phase() != game.PhaseStart {
		t.Errorf("Expected Start phase, got %s", s.Phase())
	}
	if _, ok := systems.FindPlayer(s.em); ok {
		t.Error("No player should exist before Start")
	}
	snap := s.Snapshot()
	if len(snap.Stars) != 150 {
		t.Errorf("Expected 150 background stars, got %d", len(snap.Stars))
	}
	ui := s.UIState()
	if ui.Lives != 3 || ui.Level != 1 || ui.PowerFraction != 0 || ui.Phase != game.PhaseStart {
		t.Errorf("Unexpected initial UI state %+v", ui)
	}
}

func TestNewSimulationDefaultConfig(t *testing.T) {
	s, err := NewSimulation(nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSimulation with nil config failed: %v", err)
	}
	if f := s.Config().Field; f.Width != 800 || f.Height != 600 {
		t.Errorf("Expected default 800x600 field, got %.0fx%.0f", f.Width, f.Height)
	}
}

func TestNewSimulationInvalidConfig(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	cfg.Field.Width = 0

	if _, err := NewSimulation(cfg, nil); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestStateTransitions(t *testing.T) {
	s := newTestSimulation(t)
	rec := &recorder{}
	s.Events().Subscribe(event.StateChanged, rec)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := s.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if err := s.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	want := []StateChange{
		{From: game.PhaseStart, To: game.PhasePlaying},
		{From: game.PhasePlaying, To: game.PhasePaused},
		{From: game.PhasePaused, To: game.PhasePlaying},
		{From: game.PhasePlaying, To: game.PhaseStart},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("Expected %d StateChanged events, got %d", len(want), len(rec.events))
	}
	for i, e := range rec.events {
		if got := e.Data.(StateChange); got != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestInvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Simulation)
		op    func(s *Simulation) error
	}{
		{"Start 阶段暂停", func(s *Simulation) {}, (*Simulation).Pause},
		{"Start 阶段继续", func(s *Simulation) {}, (*Simulation).Resume},
		{"Playing 阶段再次开始", func(s *Simulation) { _ = s.Start() }, (*Simulation).Start},
		{"Playing 阶段继续", func(s *Simulation) { _ = s.Start() }, (*Simulation).Resume},
		{"Paused 阶段开始", func(s *Simulation) { _ = s.Start(); _ = s.Pause() }, (*Simulation).Start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSimulation(t)
			tt.setup(s)
			before := s.Phase()

			err := tt.op(s)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Expected ErrInvalidTransition, got %v", err)
			}
			if s.Phase() != before {
				t.Errorf("Phase changed from %s to %s", before, s.Phase())
			}
		})
	}
}

func TestTogglePause(t *testing.T) {
	s := newTestSimulation(t)

	s.TogglePause()
	if s.Phase() != game.PhaseStart {
		t.Errorf("TogglePause should be ignored in Start, got %s", s.Phase())
	}

	_ = s.Start()
	s.TogglePause()
	if s.Phase() != game.PhasePaused {
		t.Errorf("Expected Paused, got %s", s.Phase())
	}
	s.TogglePause()
	if s.Phase() != game.PhasePlaying {
		t.Errorf("Expected Playing, got %s", s.Phase())
	}
}

func TestTickDeltaTime(t *testing.T) {
	s := startedSimulation(t)

	s.Tick(5 * time.Second)
	if s.Clock() != 0 {
		t.Fatalf("First tick after baseline reseed should have zero delta, clock %f", s.Clock())
	}

	s.Tick(5*time.Second + 16*time.Millisecond)
	if math.Abs(s.Clock()-0.016) > epsilon {
		t.Errorf("Expected clock 0.016, got %f", s.Clock())
	}

	// 卡顿的帧被限制在 maxDeltaTime
	s.Tick(8 * time.Second)
	if math.Abs(s.Clock()-0.116) > epsilon {
		t.Errorf("Expected clamped clock 0.116, got %f", s.Clock())
	}

	// 时间戳倒退视为 0
	s.Tick(7 * time.Second)
	if math.Abs(s.Clock()-0.116) > epsilon {
		t.Errorf("Backwards timestamp should not advance the clock, got %f", s.Clock())
	}
	s.Tick(7*time.Second + 10*time.Millisecond)
	if math.Abs(s.Clock()-0.126) > epsilon {
		t.Errorf("Expected clock 0.126 after recovering, got %f", s.Clock())
	}
}

func TestPausedSimulationIsFrozen(t *testing.T) {
	s := startedSimulation(t)
	s.SetInput(game.InputState{Left: true, Fire: true})
	for i := 0; i < 20; i++ {
		s.Update(0.05)
	}

	_ = s.Pause()
	frozen := s.Snapshot()
	clock := s.Clock()

	s.Update(0.05)
	s.Tick(time.Hour)

	if s.Clock() != clock {
		t.Errorf("Clock advanced while paused: %f -> %f", clock, s.Clock())
	}
	again := s.Snapshot()
	if !reflect.DeepEqual(frozen, again) {
		t.Error("Snapshot changed while paused")
	}

	// 继续后暂停时长不会计入 delta
	_ = s.Resume()
	s.Tick(2 * time.Hour)
	if s.Clock() != clock {
		t.Errorf("First tick after resume should be zero delta, clock %f -> %f", clock, s.Clock())
	}
}

func TestZeroDeltaIsIdempotent(t *testing.T) {
	s := startedSimulation(t)
	if _, err := entities.NewEnemyEntity(s.em, mustTable(t, s), types.EnemyMedium, 200, 100, types.MovementZigzag); err != nil {
		t.Fatalf("NewEnemyEntity failed: %v", err)
	}
	s.Update(0.05)

	before := s.Snapshot()
	s.Update(0)
	s.Update(0)
	after := s.Snapshot()

	if !reflect.DeepEqual(before.Enemies, after.Enemies) || !reflect.DeepEqual(before.Player, after.Player) {
		t.Error("Zero-delta update changed entity state")
	}
}

func mustTable(t *testing.T, s *Simulation) *config.EnemyTable {
	t.Helper()
	table, err := config.NewEnemyTable(s.cfg)
	if err != nil {
		t.Fatalf("NewEnemyTable failed: %v", err)
	}
	return table
}

func TestGameOver(t *testing.T) {
	s := startedSimulation(t)
	rec := &recorder{}
	s.Events().Subscribe(event.StateChanged, rec)

	s.score.LoseLife()
	s.score.LoseLife()
	// 玩家位于 (385, 540)，子弹直接压在判定框上
	if _, err := entities.NewEnemyBulletEntity(s.em, pattern.Bullet{X: 395, Y: 555, Size: 4, Emitter: types.EnemySmall}); err != nil {
		t.Fatalf("NewEnemyBulletEntity failed: %v", err)
	}

	s.Update(0.01)

	if s.Phase() != game.PhaseGameOver {
		t.Fatalf("Expected GameOver, got %s", s.Phase())
	}
	if ui := s.UIState(); ui.Lives != 0 || ui.Phase != game.PhaseGameOver {
		t.Errorf("Unexpected UI state %+v", ui)
	}
	if len(rec.events) != 1 || rec.events[0].Data.(StateChange).To != game.PhaseGameOver {
		t.Errorf("Expected a GameOver StateChanged event, got %v", rec.events)
	}

	clock := s.Clock()
	s.Update(0.05)
	if s.Clock() != clock {
		t.Error("Update should be a no-op after game over")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start from GameOver failed: %v", err)
	}
	if ui := s.UIState(); ui.Lives != 3 || ui.Score != 0 || ui.Phase != game.PhasePlaying {
		t.Errorf("Expected a fresh game, got %+v", ui)
	}
	if n := len(ecs.GetEntitiesWith1[*components.EnemyBulletComponent](s.em)); n != 0 {
		t.Errorf("Expected collections cleared, got %d enemy bullets", n)
	}
}

func TestReset(t *testing.T) {
	s := startedSimulation(t)
	s.SetInput(game.InputState{Fire: true})
	for i := 0; i < 60; i++ {
		s.Update(0.05)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if s.Phase() != game.PhaseStart {
		t.Errorf("Expected Start, got %s", s.Phase())
	}
	snap := s.Snapshot()
	if len(snap.Player)+len(snap.Enemies)+len(snap.PlayerBullets)+len(snap.EnemyBullets)+len(snap.PowerUps)+len(snap.Effects) != 0 {
		t.Error("Reset should remove every gameplay entity")
	}
	if len(snap.Stars) != 150 {
		t.Errorf("Background should be rebuilt, got %d stars", len(snap.Stars))
	}
	if s.Clock() != 0 || s.UIState().Score != 0 {
		t.Errorf("Counters should be reset, clock %f score %d", s.Clock(), s.UIState().Score)
	}
}

func TestLevelUpEvent(t *testing.T) {
	s := startedSimulation(t)
	rec := &recorder{}
	s.Events().Subscribe(event.LevelUp, rec)

	s.score.AddScore(1000)
	s.Update(0)
	s.Update(0)

	if len(rec.events) != 1 || rec.events[0].Data != 2 {
		t.Errorf("Expected a single LevelUp event to level 2, got %v", rec.events)
	}
	if s.UIState().Level != 2 {
		t.Errorf("Expected UI level 2, got %d", s.UIState().Level)
	}
}

func TestUIStatePowerFraction(t *testing.T) {
	s := startedSimulation(t)
	s.Update(0)

	if got := s.UIState().PowerFraction; math.Abs(got-1.0/3) > epsilon {
		t.Errorf("Expected power fraction 1/3, got %f", got)
	}
}

func TestPatternPhaseFollowsClock(t *testing.T) {
	s := startedSimulation(t)
	for i := 0; i < 5; i++ {
		s.Update(0.1)
	}

	if got := s.patternPhase(); math.Abs(got-0.5*math.Pi) > 1e-6 {
		t.Errorf("Expected phase π/2 after 0.5s, got %f", got)
	}
}

func TestSnapshotPowerUpBlink(t *testing.T) {
	s := startedSimulation(t)
	if _, err := entities.NewPowerUpEntity(s.em, s.cfg, 100, 100); err != nil {
		t.Fatalf("NewPowerUpEntity failed: %v", err)
	}

	yellow := color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	green := color.RGBA{G: 0xFF, A: 0xFF}

	if got := s.Snapshot().PowerUps[0].Color; got != yellow {
		t.Errorf("Expected blink colour at clock 0, got %v", got)
	}
	s.clock = 0.15
	if got := s.Snapshot().PowerUps[0].Color; got != green {
		t.Errorf("Expected base colour at clock 0.15, got %v", got)
	}
}

func TestSnapshotEnemyHealth(t *testing.T) {
	s := startedSimulation(t)
	table := mustTable(t, s)
	boss, err := entities.NewEnemyEntity(s.em, table, types.EnemyBoss, 360, 50, types.MovementLinear)
	if err != nil {
		t.Fatalf("NewEnemyEntity failed: %v", err)
	}
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, boss)
	enemy.Health = 5

	snap := s.Snapshot()
	if len(snap.Enemies) != 1 {
		t.Fatalf("Expected 1 enemy, got %d", len(snap.Enemies))
	}
	item := snap.Enemies[0]
	if !item.Boss || item.Health != 0.25 {
		t.Errorf("Expected boss at 25%% health, got boss=%v health=%f", item.Boss, item.Health)
	}
	if item.Shape != types.ShapeOctagon || item.Width != 80 || item.X != 360 {
		t.Errorf("Unexpected boss item %+v", item)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() Snapshot {
		s, err := NewSimulation(nil, rand.New(rand.NewSource(2024)))
		if err != nil {
			t.Fatalf("NewSimulation failed: %v", err)
		}
		_ = s.Start()
		for i := 0; i < 400; i++ {
			s.SetInput(game.InputState{Left: i%80 < 40, Right: i%80 >= 40, Fire: true})
			s.Update(0.05)
		}
		return s.Snapshot()
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("Simulations with the same seed and input should produce identical snapshots")
	}
}
