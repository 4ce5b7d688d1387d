// arithmetron-tui 终端版
//
// 与桌面版共享会话和配置，用 tcell 绘制，用 beep 合成提示音。
// 日志默认丢弃（终端被游戏占用），可用 -logFile 写入文件。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/decker502/arithmetron/pkg/stats"
	"github.com/decker502/arithmetron/pkg/tui"
	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "arithmetron-tui:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("arithmetron-tui", flag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	v := config.NewOptionsViper()
	config.ApplyFlags(v, fs)
	opts, err := config.LoadAppOptions(v, ".")
	if err != nil {
		return err
	}

	var logOut io.Writer
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logging.Setup(opts.Verbose, logOut)
	logger := logging.For("Main")

	// 终端被游戏占用，指标只能写入日志文件
	if opts.Metrics && logOut != nil {
		shutdown, err := stats.InstallMetrics(logOut, stats.DefaultExportInterval)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	gameConfig := config.DefaultGameConfig()
	if opts.GameConfigPath != "" {
		if gameConfig, err = config.LoadGameConfig(opts.GameConfigPath); err != nil {
			return err
		}
	}
	stages := config.DefaultStageTable()
	if opts.StagesPath != "" {
		if stages, err = config.LoadStageTable(opts.StagesPath); err != nil {
			return err
		}
	}

	beeper := tui.NewBeeper()
	if opts.Muted {
		beeper.SetMuted(true)
	} else if err := beeper.Init(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing silently")
	}
	defer beeper.Close()

	tracker, err := stats.NewTracker()
	if err != nil {
		return err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sess, err := session.New(gameConfig, stages, rand.New(rand.NewSource(seed)), beeper, tracker)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Int64("seed", seed).Int("stages", stages.Len()).Msg("starting terminal session")
	tui.NewGame(screen, sess, tui.NewRenderer(screen, gameConfig, tracker), beeper).Run(ctx)

	final := tracker.Snapshot()
	logger.Info().Int("highestStage", final.HighestStage).Int("annihilated", final.Annihilated).Msg("exiting")
	return nil
}
