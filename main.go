package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/decker502/arithmetron/pkg/app"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/embedded"
	"github.com/decker502/arithmetron/pkg/game"
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/decker502/arithmetron/pkg/stats"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
)

const appName = "arithmetron"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "arithmetron:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
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

	logOut, closeLog, err := openLog(opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logging.Setup(opts.Verbose, logOut)
	logger := logging.For("Main")

	if opts.Metrics {
		shutdown, err := stats.InstallMetrics(logOut, stats.DefaultExportInterval)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	embedded.Init(assetsFS, dataFS)

	gameConfig, stages, err := loadGameData(opts)
	if err != nil {
		return err
	}

	settings := game.NewSettingsManager(openGdata(logger))
	if opts.Muted {
		settings.SetMuted(true)
	}

	tracker, err := stats.NewTracker()
	if err != nil {
		return err
	}

	application, err := app.NewApp(app.Config{
		Game:     gameConfig,
		Stages:   stages,
		Seed:     opts.Seed,
		Settings: settings,
		Stats:    tracker,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(gameConfig.Screen.Width*opts.WindowScale), int(gameConfig.Screen.Height*opts.WindowScale))
	ebiten.SetWindowTitle("Arithmetron")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(gameConfig.Screen.FPS)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	err = ebiten.RunGame(application)
	final := tracker.Snapshot()
	logger.Info().Int("highestStage", final.HighestStage).Int("annihilated", final.Annihilated).Msg("exiting")
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// loadGameData 读取游戏配置和关卡表
// 未指定路径时使用嵌入的 data/game.yaml 和 data/stages.yaml
func loadGameData(opts config.AppOptions) (*config.GameConfig, config.StageTable, error) {
	var gameConfig *config.GameConfig
	var err error
	if opts.GameConfigPath != "" {
		gameConfig, err = config.LoadGameConfig(opts.GameConfigPath)
	} else {
		var data []byte
		if data, err = embedded.ReadFile("data/game.yaml"); err == nil {
			gameConfig, err = config.ParseGameConfig(data)
		}
	}
	if err != nil {
		return nil, config.StageTable{}, fmt.Errorf("game config: %w", err)
	}

	var stages config.StageTable
	if opts.StagesPath != "" {
		stages, err = config.LoadStageTable(opts.StagesPath)
	} else {
		var data []byte
		if data, err = embedded.ReadFile("data/stages.yaml"); err == nil {
			stages, err = config.ParseStageTable(data)
		}
	}
	if err != nil {
		return nil, config.StageTable{}, fmt.Errorf("stage table: %w", err)
	}
	return gameConfig, stages, nil
}

// openGdata 打开设置存储，失败时返回 nil，设置只保存在内存中
func openGdata(logger zerolog.Logger) *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn().Err(err).Msg("settings storage unavailable, settings will not persist")
		return nil
	}
	return m
}

// openLog 打开日志输出
func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
