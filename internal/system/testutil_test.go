package system

import (
	"math/rand"

	"github.com/l1jgo/hexcore/internal/config"
	"github.com/l1jgo/hexcore/internal/core/ecs"
	"github.com/l1jgo/hexcore/internal/core/event"
	"github.com/l1jgo/hexcore/internal/engagement"
	gonet "github.com/l1jgo/hexcore/internal/net"
	"github.com/l1jgo/hexcore/internal/net/packet"
	"github.com/l1jgo/hexcore/internal/pathfind"
	"github.com/l1jgo/hexcore/internal/session"
	"github.com/l1jgo/hexcore/internal/spatial"
	"github.com/l1jgo/hexcore/internal/worldmap"
	"github.com/l1jgo/hexcore/internal/worldstate"

	"go.uber.org/zap"
)

func newTestCtx() *Context {
	world := ecs.NewWorld()
	stores := worldstate.NewStores(world.Registry())
	bus := event.NewBus()
	m := worldmap.NewMap(1.0, 2.4, 1)

	cfg := &config.Config{
		Server: config.ServerConfig{
			TickMs:               125,
			MovementSpeedDefault: 0.005,
			AttackGcdMs:          1000,
		},
		Network: config.NetworkConfig{
			MaxPacketsPerTick: 32,
		},
	}

	netServer, err := gonet.NewServer("127.0.0.1:0", 8, 8, zap.NewNop())
	if err != nil {
		panic(err)
	}

	pktReg := packet.NewRegistry(zap.NewNop())
	budget := engagement.NewBudget()

	return &Context{
		Cfg:       cfg,
		Stores:    stores,
		World:     world,
		Bus:       bus,
		Map:       m,
		Index:     spatial.New(),
		Pool:      pathfind.NewPool(2, 8),
		Rand:      rand.New(rand.NewSource(1)),
		NetServer: netServer,
		Registry:  pktReg,
		Sessions:  session.NewManager(100),
		Budget:    budget,
	}
}
