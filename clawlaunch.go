package clawlaunch

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/everFinance/goether"
	"github.com/fomo4claw/clawlaunch/cache"
	"github.com/fomo4claw/clawlaunch/config"
	"github.com/fomo4claw/clawlaunch/salt"
	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/fomo4claw/clawlaunch/twitter"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/panjf2000/ants/v2"
)

var log = NewLog("clawlaunch")

const launchPoolSize = 4

type ClawLaunch struct {
	store      *Store
	wdb        *Wdb
	engine     *gin.Engine
	scheduler  *gocron.Scheduler
	cache      *cache.Cache
	config     *config.Config
	scanLocker sync.Mutex

	chain    config.Chain
	currency common.Address
	ethCli   *ethclient.Client
	wallet   *goether.Wallet

	chainLock sync.RWMutex
	chainSt   schema.ChainState

	saltEngine *salt.Engine
	twitterCli *twitter.Client
	launchPool *ants.Pool
	launchKW   *KWriter

	botHandle  string
	cronSecret string
}

func New(
	boltDirPath, mySqlDsn string, sqliteDir string, useSqlite bool,
	rpcURL, privKeyHex string, chainID int64,
	saltMinerURL, saltMinerAPIKey, contractsDir, forgeScript, minerPath string,
	twitterBearer, botHandle, cronSecret string,
	kafkaURI string,
	useS3 bool, s3AccKey, s3SecretKey, s3BucketPrefix, s3Region, s3Endpoint string,
) *ClawLaunch {
	chain, err := config.ChainByID(chainID)
	if err != nil {
		panic(err)
	}
	if rpcURL == "" {
		rpcURL = chain.DefaultRPC
	}

	var kvStore *Store
	if useS3 {
		kvStore, err = NewS3Store(s3AccKey, s3SecretKey, s3Region, s3BucketPrefix, s3Endpoint)
	} else {
		kvStore, err = NewBoltStore(boltDirPath)
	}
	if err != nil {
		panic(err)
	}

	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mySqlDsn)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	ethCli, err := ethclient.Dial(rpcURL)
	if err != nil {
		panic(err)
	}
	wallet, err := goether.NewWallet(privKeyHex, rpcURL)
	if err != nil {
		panic(err)
	}

	var twitterCli *twitter.Client
	if twitterBearer != "" {
		twitterCli, err = twitter.New(twitterBearer, botHandle)
		if err != nil {
			panic(err)
		}
	}

	var launchKW *KWriter
	if kafkaURI != "" {
		launchKW, err = NewKWriter(schema.LaunchTopic, kafkaURI)
		if err != nil {
			panic(err)
		}
	}

	launchPool, err := ants.NewPool(launchPoolSize)
	if err != nil {
		panic(err)
	}

	localCache, err := cache.NewLocalCache(2 * time.Minute)
	if err != nil {
		panic(err)
	}

	saltEngine := salt.NewEngine(salt.Options{
		RemoteURL:    saltMinerURL,
		APIKey:       saltMinerAPIKey,
		ContractsDir: contractsDir,
		ForgeScript:  forgeScript,
		MinerPath:    minerPath,
		RPCURL:       rpcURL,
		Ctx: salt.Context{
			Launcher:          wallet.Signer.Address,
			LiquidityLauncher: chain.LiquidityLauncher,
			StrategyFactory:   chain.StrategyFactory,
			HookMask:          salt.DefaultHookMask,
		},
	})

	return &ClawLaunch{
		store:      kvStore,
		wdb:        wdb,
		engine:     gin.Default(),
		scheduler:  gocron.NewScheduler(time.UTC),
		cache:      localCache,
		config:     config.New(mySqlDsn, sqliteDir, useSqlite),
		chain:      chain,
		currency:   config.NativeETH,
		ethCli:     ethCli,
		wallet:     wallet,
		saltEngine: saltEngine,
		twitterCli: twitterCli,
		launchPool: launchPool,
		launchKW:   launchKW,
		botHandle:  botHandle,
		cronSecret: cronSecret,
	}
}

func (s *ClawLaunch) Run(port string) {
	s.config.Run()
	go s.runAPI(port)
	go s.runJobs()
}

func (s *ClawLaunch) Close() {
	s.scheduler.Stop()
	s.config.Close()
	s.launchPool.Release()
	if s.launchKW != nil {
		s.launchKW.Close()
	}
	s.ethCli.Close()
	s.wdb.Close()
	if err := s.store.Close(); err != nil {
		log.Error("close kv store failed", "err", err)
	}
}
