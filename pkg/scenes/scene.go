package scenes

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic.
	// timestamp is a monotonically increasing frame time; scenes derive their own delta from it.
	Update(timestamp time.Duration) error

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}
