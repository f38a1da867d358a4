package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the dev server database. Sqlite is the default so the
// server runs with zero setup; set DB_DRIVER=mysql and DB_DSN for a shared
// instance.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch driver {
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("DB_DRIVER=mysql requires DB_DSN")
		}
		return gorm.Open(mysql.Open(dsn), gormConfig)
	case "", "sqlite":
		if dsn == "" {
			dsn = "fooddash.db"
		}
		return gorm.Open(sqlite.Open(dsn), gormConfig)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// Port returns the HTTP listen port of the dev server.
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8080"
}
