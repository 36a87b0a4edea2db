// wavetui 在终端中运行一个关卡。
//
// 按键：1-5 向对应行开火，n 请求下一波，q / Esc 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/wavegate/pkg/embedded"
	"github.com/decker502/wavegate/pkg/level"
	"github.com/decker502/wavegate/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	hudRows       = 3
	fieldWidth    = 800.0
	fieldHeight   = 480.0
	laneCount     = 5
)

var (
	levelID    = flag.String("level", "1-1", "关卡ID")
	dataDir    = flag.String("data", "", "数据目录（包含 data/ 的目录），默认从当前目录读取")
	difficulty = flag.Int("difficulty", -1, "难度，负数表示使用关卡默认值")
	logFile    = flag.String("log", "", "日志文件，默认丢弃日志")
)

// exitFlag 实现 systems.Navigator：Teardown 后结束主循环
type exitFlag struct {
	done bool
}

func (e *exitFlag) ExitLevel() {
	e.done = true
}

// Game 终端前端
type Game struct {
	screen  tcell.Screen
	session *level.Session
	exit    *exitFlag

	message  string
	lastTick time.Time
}

// NewGame 初始化终端并订阅波次事件
//
// screen 由调用方创建：终端运行时为 tcell.NewScreen()，测试时为模拟屏幕。
func NewGame(screen tcell.Screen, session *level.Session, exit *exitFlag) (*Game, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	g := &Game{
		screen:   screen,
		session:  session,
		exit:     exit,
		lastTick: time.Now(),
	}

	session.Controller.AddListener(systems.WaveListenerFuncs{
		WaveStarted: func(index int) {
			g.message = fmt.Sprintf("Wave %d/%d started (%s)", index+1, session.Table.Len(), session.Table.Current(index).Kind())
		},
		WaveCleared: func(index int) {
			if session.Table.Current(index).IsOptional() {
				g.message = fmt.Sprintf("Wave %d cleared, press n for the next wave", index+1)
			}
		},
		LevelComplete: func() {
			g.message = "Level complete! Press q to quit"
		},
	})

	return g, nil
}

// handleInput 处理一个终端事件
func (g *Game) handleInput(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			g.session.Controller.Teardown()
			return
		}
		if ev.Key() != tcell.KeyRune {
			return
		}
		switch r := ev.Rune(); {
		case r == 'q':
			g.session.Controller.Teardown()
		case r == 'n':
			if !g.session.Controller.RequestNextWave() {
				g.message = "Next wave not available"
			}
		case r >= '1' && r < '1'+laneCount:
			g.fire(int(r - '1'))
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// fire 击中指定行最靠前（X 最小）的敌人
func (g *Game) fire(lane int) {
	laneHeight := fieldHeight / laneCount
	target := systems.EnemySnapshot{X: math.Inf(1)}
	for _, enemy := range g.session.World.Snapshot() {
		if int(enemy.Y/laneHeight) == lane && enemy.X < target.X && enemy.X <= fieldWidth {
			target = enemy
		}
	}
	if target.ID == 0 {
		return
	}
	if g.session.World.Damage(target.ID, 1) {
		g.message = fmt.Sprintf("%s destroyed", target.DisplayName)
	}
}

func (g *Game) update() {
	now := time.Now()
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	g.session.Update(dt)
}

func (g *Game) draw() {
	g.screen.Clear()
	width, height := g.screen.Size()

	c := g.session.Controller
	lv := g.session.Level
	status := "Complete"
	if w, ok := c.CurrentWave(); ok {
		status = fmt.Sprintf("Wave %d/%d %s  spawned %d/%d", c.WaveIndex()+1, c.WaveCount(), w.Kind(), c.SpawnedThisWave(), w.TargetCount())
	}
	g.drawString(0, 0, fmt.Sprintf("%s - %s   %s", lv.ID, lv.Name, status), tcell.StyleDefault.Bold(true))
	g.drawString(0, 1, fmt.Sprintf("Alive %d  Killed %d  Escaped %d  Time %.1fs",
		c.LiveEnemies(), g.session.World.Killed(), g.session.World.Escaped(), g.session.Elapsed()), tcell.StyleDefault)
	g.drawString(0, 2, g.message, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	fieldRows := height - hudRows - 1
	if fieldRows < laneCount || width < 10 {
		g.screen.Show()
		return
	}

	laneRows := fieldRows / laneCount
	for lane := 0; lane < laneCount; lane++ {
		y := hudRows + lane*laneRows
		g.drawString(0, y, fmt.Sprintf("%d", lane+1), tcell.StyleDefault.Foreground(tcell.ColorGray))
		for x := 2; x < width; x++ {
			g.screen.SetContent(x, y+laneRows-1, '·', nil, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
		}
	}

	laneHeight := fieldHeight / laneCount
	for _, enemy := range g.session.World.Snapshot() {
		if enemy.X > fieldWidth {
			continue
		}
		col := 2 + int(enemy.X/fieldWidth*float64(width-3))
		lane := int(enemy.Y / laneHeight)
		row := hudRows + lane*laneRows + laneRows/2
		color := tcell.NewRGBColor(int32(enemy.Color[0]), int32(enemy.Color[1]), int32(enemy.Color[2]))
		g.screen.SetContent(col, row, enemy.Glyph, nil, tcell.StyleDefault.Foreground(color).Bold(true))
	}

	g.drawString(0, height-1, "1-5 fire  n next wave  q quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	g.screen.Show()
}

func (g *Game) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (g *Game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	g.session.Start()

	for !g.exit.done {
		select {
		case ev := <-eventChan:
			g.handleInput(ev)

		case <-ticker.C:
			g.update()
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.session.Close()
	g.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if *dataDir != "" {
		embedded.Init(os.DirFS(*dataDir))
	}

	levelConfig, catalog, err := level.Load(*levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load level: %v\n", err)
		os.Exit(1)
	}

	diff := levelConfig.Difficulty
	if *difficulty >= 0 {
		diff = *difficulty
	}

	exit := &exitFlag{}
	session, err := level.NewSession(levelConfig, catalog, level.Options{
		Difficulty: func() int { return diff },
		Navigator:  exit,
		RNG:        rand.New(rand.NewSource(time.Now().UnixNano())),
		World: systems.EnemyWorldConfig{
			Width:  fieldWidth,
			Height: fieldHeight,
			Lanes:  laneCount,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start level: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}

	game, err := NewGame(screen, session, exit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
