// pkg/netdb/postgres.go

package netdb

import (
	"context"
	"database/sql"
	"time"

	cerr "github.com/cockroachdb/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ───────────────────────── Connection helpers ───────────────────────────

// Open opens a *sql.DB using pgx and verifies connectivity with Ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, cerr.Wrap(err, "opening network store")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, cerr.Wrap(err, "pinging network store")
	}
	return db, nil
}

// Connect returns a *gorm.DB for high-level use. gorm's own SQL logging is
// silenced; fabricsync logs through zap at the call sites instead.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// Gorm upgrades an existing *sql.DB.
func Gorm(db *sql.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// Health pings the database with a short timeout.
func Health(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// AutoMigrate wraps GORM's automigrate. Only tests and dev bootstrap call
// this; against a production store the schema already exists and is owned
// by the network plugin.
func AutoMigrate(db *gorm.DB, models ...any) error {
	if len(models) == 0 {
		models = AllModels()
	}
	return db.AutoMigrate(models...)
}
