package game

// Phase 游戏阶段
// Start → Playing ⇄ Paused，Playing → GameOver → (reset) → Start
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}
