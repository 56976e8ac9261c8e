// api/db/db.go
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/spop-ops/commander/api/config"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
)

var DB *gorm.DB

func InitDB() error {
	dsn := config.GetString("mysql.dsn")
	logger.Info("Connecting to MySQL")

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// Needed so duplicate-key violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	if err := migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Successfully connected to MySQL")
	return nil
}

func migrate() error {
	return DB.AutoMigrate(
		&model.User{},
		&model.Officer{},
		&model.Task{},
		&model.TaskUpdate{},
		&model.Order{},
		&model.OrderAcknowledgment{},
		&model.Circular{},
		&model.CircularAcknowledgment{},
		&model.CircularAttachment{},
		&model.Notification{},
		&model.Report{},
		&model.ReportAttachment{},
		&model.WeeklyPlan{},
		&model.Activity{},
		&model.SyncStatus{},
		&model.SyncQueue{},
	)
}

func CloseDB() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Error("Error accessing connection pool on close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing MySQL connection", zap.Error(err))
	} else {
		logger.Info("MySQL connection closed successfully")
	}
}
