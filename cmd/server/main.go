// Command hexcore-server runs the authoritative tick-based simulation
// server: it loads config and data tables, opens the TCP listener, and
// drives the fixed-tick Runner until SIGINT/SIGTERM.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/hexcore/internal/archetype"
	"github.com/l1jgo/hexcore/internal/config"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	coresys "github.com/l1jgo/hexcore/internal/core/system"
	"github.com/l1jgo/hexcore/internal/engagement"
	gonet "github.com/l1jgo/hexcore/internal/net"
	"github.com/l1jgo/hexcore/internal/net/packet"
	"github.com/l1jgo/hexcore/internal/pathfind"
	"github.com/l1jgo/hexcore/internal/protocol"
	"github.com/l1jgo/hexcore/internal/session"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/system"
	"github.com/l1jgo/hexcore/internal/worldmap"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("HEXCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting hexcore server",
		zap.String("bind", cfg.Network.BindAddress),
		zap.Int("tick_ms", cfg.Server.TickMs),
	)

	archetypes, err := archetype.Load("config/archetypes.yaml")
	if err != nil {
		return fmt.Errorf("load archetypes: %w", err)
	}
	havens, err := engagement.LoadHavenTable("config/havens.yaml")
	if err != nil {
		return fmt.Errorf("load havens: %w", err)
	}

	ecsWorld := ecs.NewWorld()
	stores := worldstate.NewStores(ecsWorld.Registry())

	bus := event.NewBus()
	worldMap := worldmap.NewMap(1.0, 2.4, cfg.Server.StartTime)
	index := spatial.New()
	pool := pathfind.NewPool(4, 64)
	budget := engagement.NewBudget()

	spawner := &engagement.Spawner{
		Stores:     stores,
		World:      ecsWorld,
		Havens:     havens,
		Archetypes: archetypes,
		Budget:     budget,
	}
	cleanup := &engagement.Cleanup{
		Stores: stores,
		World:  ecsWorld,
		Budget: budget,
	}

	netServer, err := gonet.NewServer(cfg.Network.BindAddress, cfg.Network.InQueueSize, cfg.Network.OutQueueSize, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.AcceptLoop()

	pktReg := packet.NewRegistry(log)
	protocol.RegisterHandlers(pktReg, bus, []packet.SessionState{packet.StateConnecting, packet.StateInWorld})

	ratePerSec := 0
	if cfg.RateLimit.Enabled {
		ratePerSec = cfg.RateLimit.PacketsPerSecond
	}
	sessions := session.NewManager(ratePerSec)

	ctx := &system.Context{
		Cfg:        cfg,
		Stores:     stores,
		World:      ecsWorld,
		Bus:        bus,
		Map:        worldMap,
		Index:      index,
		Pool:       pool,
		Rand:       rand.New(rand.NewSource(cfg.Server.StartTime)),
		NetServer:  netServer,
		Registry:   pktReg,
		Sessions:   sessions,
		Havens:     havens,
		Archetypes: archetypes,
		Budget:     budget,
		Spawner:    spawner,
		Cleanup:    cleanup,
		NowMs:      0,
	}

	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(ctx))
	runner.Register(system.NewEventDispatchSystem(ctx))
	runner.Register(system.NewInputSliceSystem(ctx))
	runner.Register(system.NewPhysicsSystem(ctx))
	runner.Register(system.NewSpatialSystem(ctx))
	runner.Register(system.NewBehaviorSystem(ctx))
	runner.Register(system.NewReactionSystem(ctx))
	runner.Register(system.NewCombatStateSystem(ctx))
	runner.Register(system.NewEngagementSystem(ctx))
	runner.Register(system.NewOutputSystem(ctx))
	runner.Register(system.NewCleanupSystem(ctx))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	tickMs := time.Duration(cfg.Server.TickMs) * time.Millisecond
	systemTicker := time.NewTicker(tickMs)
	inputPoll := time.NewTicker(2 * time.Millisecond)
	defer systemTicker.Stop()
	defer inputPoll.Stop()

	log.Info("game loop started",
		zap.String("listen", netServer.Addr().String()),
		zap.Duration("tick", tickMs),
	)

	startedAt := time.Now()
	for {
		select {
		case <-systemTicker.C:
			ctx.NowMs = time.Since(startedAt).Milliseconds()
			runner.Tick(tickMs)
		case <-inputPoll.C:
			ctx.NowMs = time.Since(startedAt).Milliseconds()
			runner.TickPhase(coresys.PhaseInput, 0)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			netServer.Shutdown()
			log.Info("server stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
