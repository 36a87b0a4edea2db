// wavesim 以无界面方式运行关卡，打印波次事件与统计，用于调整关卡数值。
//
// 用法：
//
//	go run ./cmd/wavesim -level 1-1 -difficulty 2 -auto -kill-every 0.8
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/embedded"
	"github.com/decker502/wavegate/pkg/level"
)

var (
	levelID      = flag.String("level", "", "关卡ID（如 1-1），为空时运行所有关卡")
	dataDir      = flag.String("data", "", "数据目录（包含 data/ 的目录），默认从当前目录读取")
	difficulty   = flag.Int("difficulty", -1, "难度，负数表示使用关卡默认值")
	autoAdvance  = flag.Bool("auto", true, "可选波清场后自动请求下一波")
	advanceDelay = flag.Float64("advance-delay", 1.0, "自动请求下一波前的等待时间（秒）")
	killEvery    = flag.Float64("kill-every", 0, "每隔多少秒击杀一个敌人，0 表示只靠逃逸")
	step         = flag.Float64("step", 1.0/60.0, "模拟步长（秒）")
	maxTime      = flag.Float64("max-time", 900, "单个关卡模拟时长上限（秒）")
	seed         = flag.Int64("seed", 0, "随机种子，0 表示按时间播种")
	quiet        = flag.Bool("quiet", false, "只打印统计，不打印事件")
	verbose      = flag.Bool("verbose", false, "输出详细日志")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	if *dataDir != "" {
		embedded.Init(os.DirFS(*dataDir))
	}

	ids := []string{*levelID}
	if *levelID == "" {
		var err error
		ids, err = config.ListLevelIDs()
		if err != nil || len(ids) == 0 {
			fmt.Fprintf(os.Stderr, "❌ 没有找到关卡: %v\n", err)
			os.Exit(1)
		}
	}

	failed := 0
	for _, id := range ids {
		if !simulate(id) {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// simulate 运行一个关卡，返回是否完成
func simulate(id string) bool {
	levelConfig, catalog, err := level.Load(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 加载关卡 %s 失败: %v\n", id, err)
		return false
	}

	diff := levelConfig.Difficulty
	if *difficulty >= 0 {
		diff = *difficulty
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	session, err := level.NewSession(levelConfig, catalog, level.Options{
		Difficulty: func() int { return diff },
		RNG:        rand.New(rand.NewSource(rngSeed)),
		Verbose:    *verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 关卡 %s: %v\n", id, err)
		return false
	}
	defer session.Close()

	fmt.Printf("=== Level %s: %s (difficulty %d, seed %d) ===\n", levelConfig.ID, levelConfig.Name, diff, rngSeed)

	opts := level.SimulationOptions{
		Step:         *step,
		MaxTime:      *maxTime,
		AutoAdvance:  *autoAdvance,
		AdvanceDelay: *advanceDelay,
		KillEvery:    *killEvery,
	}
	if !*quiet {
		opts.OnEvent = func(elapsed float64, event string) {
			fmt.Printf("[%7.2fs] %s\n", elapsed, event)
		}
	}

	result := level.Simulate(session, opts)

	fmt.Printf("Elapsed:        %.2fs\n", result.Elapsed)
	fmt.Printf("Waves cleared:  %d/%d\n", result.WavesCleared, session.Table.Len())
	fmt.Printf("Quota consumed: %d\n", result.Spawned)
	fmt.Printf("Killed:         %d\n", result.Killed)
	fmt.Printf("Escaped:        %d\n", result.Escaped)
	fmt.Printf("Manual advance: %d\n", result.ManualAdvance)
	fmt.Printf("Final state:    %s\n", result.FinalState)

	if !result.Completed {
		fmt.Printf("⚠️  Level %s did not complete within %.0fs\n\n", id, *maxTime)
		return false
	}
	fmt.Printf("✅ Level %s complete\n\n", id)
	return true
}
