package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/wavegate/pkg/app"
	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	level := flag.String("level", "", "直接进入指定关卡（如 1-2），默认显示关卡菜单")
	difficulty := flag.Int("difficulty", -1, "初始难度，负数表示使用关卡默认难度")
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Level:      *level,
		Difficulty: *difficulty,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Wavegate")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(a)
	a.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "运行错误: %v\n", runErr)
		os.Exit(1)
	}
}
