package config

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DataBase *gorm.DB

func ConnectDatabase(cfg *Env) error {
	db, err := NewDatabase(cfg)
	if err != nil {
		return err
	}

	DataBase = db

	return nil
}

func NewDatabase(cfg *Env) (*gorm.DB, error) {
	dialector := postgres.Open(cfg.DatabaseDSN())

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,  // Slow SQL threshold
			LogLevel:                  logger.Error, // Log level
			IgnoreRecordNotFoundError: true,         // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,        // Disable color
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 newLogger,
	})

	if err != nil {
		return nil, err
	}

	return db, nil
}

func CloseDatabase() {
	if DataBase == nil {
		return
	}

	if sqlDB, err := DataBase.DB(); err == nil {
		sqlDB.Close()
	}
}
