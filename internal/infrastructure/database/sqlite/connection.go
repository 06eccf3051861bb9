package sqlite

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pillulu/internal/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	dbInstance *gorm.DB
	once       sync.Once
)

// NewDB opens the SQLite database at path and applies pending migrations.
// The connection is established only once; later calls return the same handle.
func NewDB(ctx context.Context, path, logLevel string, appLog logger.Logger) (*gorm.DB, error) {
	var openErr error
	once.Do(func() {
		if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				openErr = fmt.Errorf("🔴 ERROR: failed to create database directory %s: %w", dir, err)
				return
			}
		}

		db, err := Open(path, gormLogLevel(logLevel))
		if err != nil {
			openErr = err
			return
		}
		appLog.Info(fmt.Sprintf("Successfully connected to database: %s", path))

		if err := RunMigrations(ctx, db); err != nil {
			openErr = err
			return
		}
		appLog.Info("Database schema migration completed.")
		dbInstance = db
	})
	if openErr != nil {
		return nil, openErr
	}
	if dbInstance == nil {
		return nil, fmt.Errorf("🔴 ERROR: database initialization failed earlier")
	}
	return dbInstance, nil
}

// Open opens a gorm handle with foreign keys enforced. It does not migrate.
func Open(path string, level gormlogger.LogLevel) (*gorm.DB, error) {
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(withPragmas(path)), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to connect to database: %w", err)
	}
	return db, nil
}

// OpenMemory opens and migrates a private in-memory database. Used by tests.
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(name, "/", "_"))
	db, err := Open(dsn, gormlogger.Silent)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One connection keeps the in-memory database alive and avoids shared-cache table locks.
	sqlDB.SetMaxOpenConns(1)
	if err := RunMigrations(context.Background(), db); err != nil {
		return nil, err
	}
	return db, nil
}

// CloseDB closes the database connection if it's open.
func CloseDB() error {
	if dbInstance != nil {
		sqlDB, err := dbInstance.DB()
		if err != nil {
			return fmt.Errorf("🔴 ERROR: failed to get underlying *sql.DB: %w", err)
		}
		return sqlDB.Close()
	}
	return nil
}

func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1&_busy_timeout=5000"
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
