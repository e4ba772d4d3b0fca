// Package app 提供游戏应用的核心包装器
//
// 该包把配置加载、模拟创建和场景装配从 main 包提取出来，
// main.go 只负责解析命令行参数和启动 ebiten。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/render"
	"github.com/decker502/spacedefender/pkg/scenes"
	"github.com/decker502/spacedefender/pkg/simulation"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// ConfigPath 玩法配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *scenes.SceneManager
	sim          *simulation.Simulation
	startTime    time.Time
	width        int
	height       int
	verbose      bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultGameplayConfigPath
	}
	gameplay, err := config.LoadGameplayConfig(path)
	if err != nil {
		return nil, fmt.Errorf("玩法配置加载失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] 随机种子: %d", seed)

	sim, err := simulation.NewSimulation(gameplay, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("模拟初始化失败: %w", err)
	}

	sceneManager := scenes.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(sim, render.NewSnapshotRenderer(), nil))

	field := sim.Config().Field
	return &App{
		sceneManager: sceneManager,
		sim:          sim,
		startTime:    time.Now(),
		width:        int(field.Width),
		height:       int(field.Height),
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次），时间戳来自单调时钟
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	return a.sceneManager.Update(time.Since(a.startTime))
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸，即场地尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// WindowSize 返回窗口初始尺寸
func (a *App) WindowSize() (int, int) {
	return a.width, a.height
}

// Simulation 返回游戏模拟
func (a *App) Simulation() *simulation.Simulation {
	return a.sim
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
