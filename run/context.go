package run

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/protocol"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/rpc"
	"github.com/gagarinchain/claimnet/stake"
	"github.com/gagarinchain/claimnet/state"
	"github.com/gagarinchain/claimnet/storage"
	"github.com/pkg/errors"
)

var UnknownOracleError = common.NewError(common.Validation, "unknown oracle type")

const busSize = 1024

type Context struct {
	storage storage.Storage
	db      *state.DB
	ledger  *stake.MemoryLedger
	static  *reputation.StaticSource
	source  reputation.Source
	engine  *protocol.Engine
	bus     *common.ChannelBus
	keeper  *Keeper
	rpc     *rpc.Service
}

func (c *Context) Engine() *protocol.Engine {
	return c.engine
}

func (c *Context) Ledger() *stake.MemoryLedger {
	return c.ledger
}

func (c *Context) Source() reputation.Source {
	return c.source
}

// CreateContext wires a node. An empty store is initialised from the protocol settings and the seed.
func CreateContext(s *common.Settings) (*Context, error) {
	st, err := storage.NewStorage(s.Storage.Dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "can't open storage")
	}
	c := &Context{
		storage: st,
		db:      state.NewStateDB(st),
		ledger:  stake.NewMemoryLedger(),
		bus:     common.NewChannelBus(busSize),
	}
	c.bus.SubscribeAll(common.LogBus{}.FireEvent)

	if err := c.createSource(s); err != nil {
		st.Close()
		return nil, err
	}
	c.engine = protocol.NewEngine(c.db, c.ledger, c.source, common.SystemClock{}, c.bus)

	if err := c.initialize(s); err != nil {
		st.Close()
		return nil, err
	}

	c.keeper = NewKeeper(c.engine, time.Duration(s.Keeper.Interval)*time.Second)
	if s.Rpc.Address != "" {
		c.rpc = rpc.NewService(c.engine, rpc.Config{
			Address:           s.Rpc.Address,
			RequestsPerSecond: s.Rpc.RequestsPerSecond,
			Burst:             s.Rpc.Burst,
		})
	}
	return c, nil
}

func (c *Context) createSource(s *common.Settings) error {
	var src reputation.Source
	switch strings.ToLower(s.Oracle.Type) {
	case "", "static":
		c.static = reputation.NewStaticSource(s.Oracle.DefaultActive)
		src = c.static
	case "decay":
		src = reputation.NewDecaySource(c.db, common.SystemClock{})
	default:
		return errors.Wrapf(UnknownOracleError, "%q", s.Oracle.Type)
	}
	if s.Oracle.CacheTTL > 0 {
		src = reputation.NewCachedSource(src, time.Duration(s.Oracle.CacheTTL)*time.Second)
	}
	c.source = src
	return nil
}

func (c *Context) initialize(s *common.Settings) error {
	if c.db.Initialized() {
		log.Infof("Loaded protocol state from %v", s.Storage.Dir)
		return nil
	}
	if s.Seed.Path == "" {
		return errors.Wrap(NoAdminError, "empty store needs a seed")
	}
	seed, err := SeedFromFile(s.Seed.Path)
	if err != nil {
		return err
	}
	p, err := params.FromSettings(s.Protocol)
	if err != nil {
		return err
	}
	roles, err := seed.Roles()
	if err != nil {
		return err
	}
	if err := c.db.Init(p, roles); err != nil {
		return err
	}
	return seed.Apply(context.Background(), c.engine, c.ledger, c.static)
}

// Bootstrap starts the bus, the keeper and the rpc service and blocks until interrupted.
func (c *Context) Bootstrap() {
	rootCtx, cancel := context.WithCancel(context.Background())
	done := c.handleInterrupt(cancel)

	go c.bus.Run(rootCtx)
	go c.keeper.Run(rootCtx)
	if c.rpc != nil {
		go func() {
			if err := c.rpc.Bootstrap(rootCtx); err != nil {
				log.Error("Can't start rpc service", err)
				cancel()
			}
		}()
	}
	log.Info("All services bootstrapped successfully")

	<-done
}

func (c *Context) handleInterrupt(cancel context.CancelFunc) chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		sig := <-sigChan
		log.Infof("Received %v signal. Shutting down", sig)
		cancel()
		c.storage.Close()

		log.Info("Shut down completed")
		close(done)
	}()

	return done
}
