package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardState 存储当前帧的键盘状态
// 方向键和开火键是按住状态，其余是本帧刚按下（边沿触发）
type KeyboardState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool

	// 开始/重新开始
	Start bool
	// 暂停切换
	Pause bool
	// 回到开始界面
	Reset bool
}

// KeyReader 读取一帧键盘状态，便于测试时替换
type KeyReader func() KeyboardState

var (
	upKeys    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	downKeys  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	fireKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyZ}
	startKeys = []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}
	pauseKeys = []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}
	resetKeys = []ebiten.Key{ebiten.KeyR}
)

// ReadKeyboard 读取当前帧的键盘状态
// 方向键支持方向键和 WASD，开火支持空格和 Z
func ReadKeyboard() KeyboardState {
	return KeyboardState{
		Up:    anyPressed(upKeys),
		Down:  anyPressed(downKeys),
		Left:  anyPressed(leftKeys),
		Right: anyPressed(rightKeys),
		Fire:  anyPressed(fireKeys),
		Start: anyJustPressed(startKeys),
		Pause: anyJustPressed(pauseKeys),
		Reset: anyJustPressed(resetKeys),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
