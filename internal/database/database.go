package database

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jarvis/internal/models"
	"jarvis/internal/utils"
)

var ErrDatabaseURLRequired = errors.New("database url must not be empty: set JARVIS_DATABASE_URL in your environment")

// Config holds DB configuration
type Config struct {
	// URL is a postgres:// DSN, a sqlite:// URL, a file: URI, ":memory:" or a plain sqlite path.
	URL      string
	LogLevel logger.LogLevel
	Logger   *slog.Logger
}

// Init opens the database named by cfg.URL and runs migrations.
func Init(cfg Config) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrDatabaseURLRequired
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = DefaultLogLevel()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	dialector, isSQLite, err := Dialector(cfg.URL)
	if err != nil {
		return nil, err
	}
	if path := sqliteFilePath(cfg.URL); isSQLite && path != "" {
		if err := utils.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	gormLogger := logger.New(
		log.New(loggerWriter{logger: cfg.Logger}, "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  cfg.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if isSQLite {
		// a single connection avoids "database is locked" and keeps :memory: alive
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Dialector picks the gorm driver for url. The second result reports whether
// the target is SQLite.
func Dialector(url string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), false, nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(url, "sqlite://"))), true, nil
	case strings.HasPrefix(url, "file:"), url == ":memory:":
		return sqlite.Open(sqliteDSN(url)), true, nil
	case strings.Contains(url, "://"):
		scheme, _, _ := strings.Cut(url, "://")
		return nil, false, fmt.Errorf("unsupported database scheme %q", scheme)
	default:
		return sqlite.Open(sqliteDSN(url)), true, nil
	}
}

// sqliteFilePath returns the on-disk file behind a sqlite url, or "" for
// in-memory databases and file: URIs.
func sqliteFilePath(url string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	if strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return ""
	}
	path, _, _ = strings.Cut(path, "?")
	return path
}

func sqliteDSN(path string) string {
	params := "_busy_timeout=5000&_foreign_keys=ON"
	if !strings.Contains(path, ":memory:") && !strings.Contains(path, "mode=memory") {
		params = "_journal_mode=WAL&" + params
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params
}

// migrate runs all automigrations. Keep the model list in one place.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ContextRecord{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// loggerWriter satisfies io.Writer for the GORM logger and forwards each line to slog.
type loggerWriter struct {
	logger *slog.Logger
}

func (w loggerWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimSpace(string(p)), "component", "gorm")
	return len(p), nil
}
