package scenes

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/render"
	"github.com/decker502/spacedefender/pkg/simulation"
)

// GameScene 把键盘输入和帧时钟交给模拟，并绘制模拟快照
//
// 提示层（开始、暂停、游戏结束）由 StateChanged 事件切换，
// 场景本身不查询模拟阶段。
type GameScene struct {
	sim      *simulation.Simulation
	renderer *render.SnapshotRenderer
	readKeys KeyReader

	overlay []string
}

// NewGameScene 创建游戏场景
// readKeys 为 nil 时读取真实键盘
func NewGameScene(sim *simulation.Simulation, renderer *render.SnapshotRenderer, readKeys KeyReader) *GameScene {
	if readKeys == nil {
		readKeys = ReadKeyboard
	}
	s := &GameScene{
		sim:      sim,
		renderer: renderer,
		readKeys: readKeys,
		overlay:  overlayFor(sim.Phase(), sim.UIState()),
	}
	sim.Events().Subscribe(event.StateChanged, s)
	return s
}

// OnEvent 根据阶段切换提示层
func (s *GameScene) OnEvent(e event.Event) {
	change, ok := e.Data.(simulation.StateChange)
	if !ok {
		return
	}
	s.overlay = overlayFor(change.To, s.sim.UIState())
}

// Update 处理生命周期按键，更新按住的按键，然后推进一帧
func (s *GameScene) Update(timestamp time.Duration) error {
	keys := s.readKeys()

	switch {
	case keys.Reset:
		if err := s.sim.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
	case keys.Start:
		phase := s.sim.Phase()
		if phase == game.PhaseStart || phase == game.PhaseGameOver {
			if err := s.sim.Start(); err != nil {
				log.Printf("[GameScene] 开始游戏失败: %v", err)
			}
		}
	case keys.Pause:
		s.sim.TogglePause()
	}

	s.sim.SetInput(game.InputState{
		Up:    keys.Up,
		Down:  keys.Down,
		Left:  keys.Left,
		Right: keys.Right,
		Fire:  keys.Fire,
	})
	s.sim.Tick(timestamp)
	return nil
}

// Draw 绘制快照、HUD 和当前提示层
func (s *GameScene) Draw(screen *ebiten.Image) {
	snap := s.sim.Snapshot()
	s.renderer.Draw(screen, snap)
	s.renderer.DrawHUD(screen, s.sim.UIState(), snap.Width)
	if len(s.overlay) > 0 {
		s.renderer.DrawOverlay(screen, snap.Width, snap.Height, s.overlay...)
	}
}

// Overlay 返回当前提示层文字，没有提示层时为空
func (s *GameScene) Overlay() []string {
	return s.overlay
}

func overlayFor(phase game.Phase, ui game.UIState) []string {
	switch phase {
	case game.PhaseStart:
		return []string{"SPACE DEFENDER", "ARROWS/WASD MOVE  SPACE/Z FIRE  P PAUSE", "PRESS ENTER TO START"}
	case game.PhasePaused:
		return []string{"PAUSED", "PRESS P TO RESUME"}
	case game.PhaseGameOver:
		return []string{"GAME OVER", fmt.Sprintf("SCORE %d  LEVEL %d  GRAZE %d", ui.Score, ui.Level, ui.Graze), "PRESS ENTER TO RETRY"}
	default:
		return nil
	}
}
