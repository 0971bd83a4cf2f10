package clawlaunch

import (
	"path"
	"strings"
	"time"

	"github.com/fomo4claw/clawlaunch/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const sqliteName = "clawlaunch.sqlite"

type Wdb struct {
	Db *gorm.DB
}

func NewMysqlDb(dsn string) *Wdb {
	logLevel := logger.Error
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logLevel),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect mysql db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbDir string) *Wdb {
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, sqliteName)), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.LaunchRecord{})
}

// SaveLaunch upserts by tweet id, which keeps record writes idempotent when a
// scan cycle retries after a crash.
func (w *Wdb) SaveLaunch(rec schema.LaunchRecord) error {
	return w.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tweet_id"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

func (w *Wdb) GetLaunch(tweetID string) (rec schema.LaunchRecord, err error) {
	err = w.Db.First(&rec, "tweet_id = ?", tweetID).Error
	return
}

// GetLaunchesByWallet matches the wallet case-insensitively; wallets are
// stored lower case but API callers may submit checksummed addresses.
func (w *Wdb) GetLaunchesByWallet(wallet string, since time.Time) ([]schema.LaunchRecord, error) {
	res := make([]schema.LaunchRecord, 0)
	err := w.Db.Where("wallet = ? and created_at >= ?",
		strings.ToLower(wallet), since).Find(&res).Error
	return res, err
}

func (w *Wdb) GetAllLaunches() ([]schema.LaunchRecord, error) {
	res := make([]schema.LaunchRecord, 0, 100)
	err := w.Db.Order("created_at desc").Find(&res).Error
	return res, err
}

// ExistsSymbol reports whether any prior record claimed the symbol,
// including failed ones. Symbols are stored upper case, so the lookup
// normalizes first.
func (w *Wdb) ExistsSymbol(symbol string) (bool, error) {
	var count int64
	err := w.Db.Model(&schema.LaunchRecord{}).
		Where("upper(symbol) = ?", strings.ToUpper(symbol)).
		Count(&count).Error
	return count > 0, err
}

func (w *Wdb) UpdateLaunchStatus(tweetID, status, errMsg string) error {
	return w.Db.Model(&schema.LaunchRecord{}).Where("tweet_id = ?", tweetID).
		Updates(map[string]interface{}{"status": status, "err_msg": errMsg}).Error
}

// MarkLaunched records the terminal success state in one update.
func (w *Wdb) MarkLaunched(tweetID, tokenAddress, txHash string, launchedAt time.Time) error {
	return w.Db.Model(&schema.LaunchRecord{}).Where("tweet_id = ?", tweetID).
		Updates(map[string]interface{}{
			"status":        schema.LaunchStatusLaunched,
			"token_address": tokenAddress,
			"tx_hash":       txHash,
			"launched_at":   launchedAt,
			"err_msg":       "",
		}).Error
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}
