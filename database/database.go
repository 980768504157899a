package database

import (
	"fmt"
	"ramadan-meal-recommender/structs"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	"github.com/pkg/errors"
)

var Mysql *gorm.DB

// DSN builds the connection string for the configured client.
func DSN(config structs.Database) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", config.User, config.Password, config.Host, config.Port, config.Db)
	if config.Params != "" {
		dsn += "?" + config.Params
	}
	return dsn
}

// InitDatabasePool opens the shared pool and stores it in Mysql.
func InitDatabasePool(config structs.Database) (*gorm.DB, error) {
	db, err := gorm.Open(config.Client, DSN(config))
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", config.Client)
	}

	db.DB().SetMaxIdleConns(int(config.MaxIdle))
	db.DB().SetMaxOpenConns(int(config.MaxOpenConn))
	if config.MaxLifeTime != "" {
		lifeTime, err := time.ParseDuration(config.MaxLifeTime)
		if err != nil {
			db.Close()
			return nil, errors.Wrap(err, "database.max_life_time")
		}
		db.DB().SetConnMaxLifetime(lifeTime)
	}
	db.LogMode(config.LogEnable == 1)

	Mysql = db
	return db, nil
}
