package config

import (
	"math/big"
	"sync"
	"time"

	"github.com/fomo4claw/clawlaunch/auction"
	"github.com/fomo4claw/clawlaunch/config/schema"
	"github.com/go-co-op/gocron"
	"github.com/shopspring/decimal"
)

const (
	DefaultFloorMcapEth   = "33"
	DefaultRateLimitHours = 24
	DefaultScanBatchSize  = 100
)

type Config struct {
	wdb       *Wdb
	scheduler *gocron.Scheduler

	lock        sync.RWMutex
	param       schema.Param
	ipWhiteList map[string]struct{}
}

func New(configDSN string, sqliteDir string, useSqlite bool) *Config {
	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteWdb(sqliteDir)
	} else {
		wdb = NewWdb(configDSN)
	}
	if err := wdb.Migrate(); err != nil {
		panic(err)
	}
	param, err := wdb.GetParam()
	if err != nil {
		panic(err)
	}
	c := &Config{
		wdb:         wdb,
		scheduler:   gocron.NewScheduler(time.UTC),
		param:       normalizeParam(param),
		ipWhiteList: make(map[string]struct{}),
	}
	c.updateIPWhiteList()
	return c
}

func defaultParam() schema.Param {
	return schema.Param{
		AuctionDurationBlocks: auction.DefaultDurationBlocks,
		FloorMcapEth:          DefaultFloorMcapEth,
		RateLimitHours:        DefaultRateLimitHours,
		ScanBatchSize:         DefaultScanBatchSize,
	}
}

func normalizeParam(p schema.Param) schema.Param {
	def := defaultParam()
	if p.AuctionDurationBlocks == 0 {
		p.AuctionDurationBlocks = def.AuctionDurationBlocks
	}
	if p.FloorMcapEth == "" {
		p.FloorMcapEth = def.FloorMcapEth
	}
	if p.RateLimitHours <= 0 {
		p.RateLimitHours = def.RateLimitHours
	}
	if p.ScanBatchSize <= 0 {
		p.ScanBatchSize = def.ScanBatchSize
	}
	return p
}

func (c *Config) AuctionDurationBlocks() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.param.AuctionDurationBlocks
}

// FloorPrice converts the configured market cap (decimal ETH over the fixed
// 1e9 supply) to the Q96 fixed-point per-token price the strategy expects.
func (c *Config) FloorPrice() *big.Int {
	c.lock.RLock()
	mcap := c.param.FloorMcapEth
	c.lock.RUnlock()

	d, err := decimal.NewFromString(mcap)
	if err != nil || d.Sign() <= 0 {
		return auction.DefaultFloorPrice()
	}
	// mcap * Q96 / 1e9, truncated
	return d.Mul(decimal.NewFromBigInt(auction.Q96, -9)).BigInt()
}

func (c *Config) RateLimitWindow() time.Duration {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return time.Duration(c.param.RateLimitHours) * time.Hour
}

func (c *Config) RateLimitHours() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.param.RateLimitHours
}

func (c *Config) ScanBatchSize() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.param.ScanBatchSize
}

func (c *Config) IPWhiteList() *map[string]struct{} {
	c.lock.RLock()
	defer c.lock.RUnlock()
	mmap := c.ipWhiteList
	return &mmap
}

func (c *Config) Run() {
	go c.runJobs()
}

func (c *Config) Close() {
	c.scheduler.Stop()
	c.wdb.Close()
}
