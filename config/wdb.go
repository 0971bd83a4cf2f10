package config

import (
	"path"

	"github.com/fomo4claw/clawlaunch/config/schema"
	"github.com/inconshreveable/log15"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = log15.New("module", "config")

type Wdb struct {
	Db *gorm.DB
}

func NewWdb(dsn string) *Wdb {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 10,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect config db success")
	return &Wdb{Db: db}
}

func NewSqliteWdb(sqliteDir string) *Wdb {
	db, err := gorm.Open(sqlite.Open(path.Join(sqliteDir, "config.sqlite")), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 10,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite config db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.Param{}, &schema.IpRateWhitelist{})
}

func (w *Wdb) GetParam() (param schema.Param, err error) {
	err = w.Db.First(&param).Error
	if err == gorm.ErrRecordNotFound {
		return defaultParam(), nil
	}
	return
}

func (w *Wdb) GetAllAvailableIpRateWhitelist() (ips []schema.IpRateWhitelist, err error) {
	err = w.Db.Where("available = ?", true).Find(&ips).Error
	return
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}
