package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fomo4claw/clawlaunch"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name: "clawlaunch",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db_dir", Value: "./data/bolt", Usage: "bolt db dir path", EnvVars: []string{"DB_DIR"}},
			&cli.StringFlag{Name: "mysql", Value: "root@tcp(127.0.0.1:3306)/clawlaunch?charset=utf8mb4&parseTime=True&loc=Local", Usage: "mysql dsn", EnvVars: []string{"MYSQL"}},
			&cli.StringFlag{Name: "sqlite_dir", Value: "./data/sqlite", Usage: "sqlite db dir path", EnvVars: []string{"SQLITE_DIR"}},
			&cli.BoolFlag{Name: "use_sqlite", Value: false, Usage: "use sqlite instead of mysql", EnvVars: []string{"USE_SQLITE"}},

			&cli.StringFlag{Name: "rpc_url", Value: "", Usage: "evm rpc url, chain default when empty", EnvVars: []string{"RPC_URL"}},
			&cli.StringFlag{Name: "private_key", Value: "", Usage: "launcher hot wallet private key hex", EnvVars: []string{"PRIVATE_KEY"}},
			&cli.Int64Flag{Name: "chain_id", Value: 84532, Usage: "target chain id", EnvVars: []string{"CHAIN_ID"}},

			&cli.StringFlag{Name: "salt_miner_url", Value: "", Usage: "remote salt mining service url", EnvVars: []string{"SALT_MINER_URL"}},
			&cli.StringFlag{Name: "salt_miner_api_key", Value: "", EnvVars: []string{"SALT_MINER_API_KEY"}},
			&cli.StringFlag{Name: "contracts_dir", Value: "", Usage: "foundry contracts dir for local mining", EnvVars: []string{"CONTRACTS_DIR"}},
			&cli.StringFlag{Name: "forge_script", Value: "script/GetInitCodeHashSepolia.s.sol:GetInitCodeHashSepolia", EnvVars: []string{"FORGE_SCRIPT"}},
			&cli.StringFlag{Name: "miner_path", Value: "", Usage: "address-miner binary path", EnvVars: []string{"MINER_PATH"}},

			&cli.StringFlag{Name: "twitter_bearer_token", Value: "", EnvVars: []string{"TWITTER_BEARER_TOKEN"}},
			&cli.StringFlag{Name: "bot_handle", Value: "fomo4claw_bot", EnvVars: []string{"BOT_HANDLE"}},
			&cli.StringFlag{Name: "cron_secret", Value: "", Usage: "bearer secret for /launch/scan", EnvVars: []string{"CRON_SECRET"}},

			&cli.StringFlag{Name: "kafka_uri", Value: "", Usage: "kafka broker uri, eventing off when empty", EnvVars: []string{"KAFKA_URI"}},

			&cli.BoolFlag{Name: "s3_flag", Value: false, Usage: "run with s3 store", EnvVars: []string{"S3_FLAG"}},
			&cli.StringFlag{Name: "s3_acc_key", Value: "", Usage: "s3 access key", EnvVars: []string{"S3_ACC_KEY"}},
			&cli.StringFlag{Name: "s3_secret_key", Value: "", Usage: "s3 secret key", EnvVars: []string{"S3_SECRET_KEY"}},
			&cli.StringFlag{Name: "s3_prefix", Value: "clawlaunch", Usage: "s3 bucket name prefix", EnvVars: []string{"S3_PREFIX"}},
			&cli.StringFlag{Name: "s3_region", Value: "ap-northeast-1", Usage: "s3 bucket region", EnvVars: []string{"S3_REGION"}},
			&cli.StringFlag{Name: "s3_endpoint", Value: "", EnvVars: []string{"S3_ENDPOINT"}},

			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	s := clawlaunch.New(
		c.String("db_dir"), c.String("mysql"), c.String("sqlite_dir"), c.Bool("use_sqlite"),
		c.String("rpc_url"), c.String("private_key"), c.Int64("chain_id"),
		c.String("salt_miner_url"), c.String("salt_miner_api_key"),
		c.String("contracts_dir"), c.String("forge_script"), c.String("miner_path"),
		c.String("twitter_bearer_token"), c.String("bot_handle"), c.String("cron_secret"),
		c.String("kafka_uri"),
		c.Bool("s3_flag"), c.String("s3_acc_key"), c.String("s3_secret_key"),
		c.String("s3_prefix"), c.String("s3_region"), c.String("s3_endpoint"),
	)
	s.Run(c.String("port"))

	<-signals
	s.Close()

	return nil
}
