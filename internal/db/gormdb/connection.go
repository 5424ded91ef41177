package gormdb

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oggyb/lessons-api/internal/db"
)

type GormDB struct {
	conn *gorm.DB
}

// New opens a Postgres connection. SQL statements are only logged when
// debug logging is enabled on log.
func New(dsn string, log *zap.Logger) (*GormDB, error) {
	level := gormlogger.Silent
	if log != nil && log.Core().Enabled(zap.DebugLevel) {
		level = gormlogger.Info
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &GormDB{conn: conn}, nil
}

func (g *GormDB) Conn() any {
	return g.conn
}

// Ping checks that the underlying connection pool can reach the server.
func (g *GormDB) Ping(ctx context.Context) error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *GormDB) Close() error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the tables of the given models.
func (g *GormDB) AutoMigrate(models ...any) error {
	return g.conn.AutoMigrate(models...)
}

// verify it satisfies db.DB
var _ db.DB = (*GormDB)(nil)
