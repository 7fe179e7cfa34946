package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kkj123/config"
	"kkj123/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	mysqlScheme        = "mysql://"
	slowQueryThreshold = 200 * time.Millisecond
)

var errUnsupportedDSN = errors.New("unsupported connection string")

// Store is the data layer of the chat service. It owns one session to
// the database for its whole lifetime; call Close to release it.
//
// With the default pool size of one, calls on the same Store are
// serialised by the pool. Callers needing parallel writes should hold
// one Store each or raise DATABASE_MAX_OPEN_CONNS.
type Store struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// ConnectFromEnv is Connect with the configuration read from the
// environment.
func ConnectFromEnv(ctx context.Context, log logrus.FieldLogger) (*Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	return Connect(ctx, cfg.Database, log)
}

// Connect opens and pings a session described by cfg.URL. Every failure
// is a *ConnectionError.
func Connect(ctx context.Context, cfg config.Database, log logrus.FieldLogger) (*Store, error) {
	dialector, err := dialectorFor(cfg.URL)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	return open(ctx, dialector, cfg.MaxOpenConns, log)
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, mysqlScheme):
		return mysql.Open(strings.TrimPrefix(dsn, mysqlScheme)), nil
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="),
		strings.Contains(dsn, "dbname="):
		return postgres.Open(dsn), nil
	default:
		return nil, errUnsupportedDSN
	}
}

func open(ctx context.Context, dialector gorm.Dialector, maxOpenConns int, log logrus.FieldLogger) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	if maxOpenConns < 1 {
		maxOpenConns = 1
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, &ConnectionError{Err: fmt.Errorf("ping: %w", err)}
	}

	log.WithField("dialect", dialector.Name()).Info("database connection established")
	return &Store{db: db, log: log}, nil
}

// Migrate creates or updates the users, channels, memberships and
// messages tables.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.SetupJoinTable(&models.User{}, "Channels", &models.Membership{}); err != nil {
		return fmt.Errorf("setup memberships join table: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Channel{}, &models.Membership{}, &models.Message{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
