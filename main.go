package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/spacedefender/pkg/app"
	"github.com/decker502/spacedefender/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	configPath = flag.String("config", "", "玩法配置文件路径（默认使用内置配置）")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Seed:       *seed,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	width, height := gameApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Space Defender")

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
