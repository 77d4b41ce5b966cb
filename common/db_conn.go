package common

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"teamtasks/model"
)

// InitDB opens the configured relational store and runs migrations.
// sqlite (default) needs no server; mysql gets the teacher-style pool limits.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var (
		err   error
		db    *gorm.DB
		sqlDB *sql.DB
	)

	gormConf := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	switch cfg.Database.Driver {
	case "mysql":
		uri := cfg.Database.DSN
		if uri == "" {
			uri = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=%s",
				cfg.Database.Username,
				cfg.Database.Password,
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.Database,
				cfg.Database.Charset,
				cfg.Database.Loc,
			)
		}
		if db, err = gorm.Open(mysql.Open(uri), gormConf); err != nil {
			return nil, fmt.Errorf("mysql open: %w", err)
		}

		if sqlDB, err = db.DB(); err != nil {
			return nil, err
		}
		if cfg.Database.MaxIdleCons > 0 {
			sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleCons)
		}
		if cfg.Database.MaxOpenCons > 0 {
			sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenCons)
		}
		if cfg.Database.MaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.MaxLifetime) * time.Second)
		}

	case "sqlite":
		path := cfg.Database.DSN
		if path == "" {
			path = cfg.Database.Path
		}
		if db, err = gorm.Open(sqlite.Open(path), gormConf); err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	if err = db.AutoMigrate(
		&model.User{},
		&model.Job{},
		&model.Task{},
		&model.Note{},
		&model.PasswordReset{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
