package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"enquirycrm/internal/config"
	"enquirycrm/internal/domain"
	applog "enquirycrm/internal/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	db *gorm.DB
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Models lists every table managed by Migrate.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.SalesPerson{},
		&domain.Enquiry{},
		&domain.Comment{},
		&domain.Activity{},
	}
}

// Open connects to the database named by cfg without migrating it.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	log := applog.For("DB")

	var dialector gorm.Dialector
	switch {
	case cfg.IsPostgres():
		log.Info("Connecting to PostgreSQL database")
		dialector = postgres.Open(cfg.GetPostgresDSN())
	case cfg.IsMySQL():
		log.Info("Connecting to MySQL database")
		dsn, err := cfg.GetMySQLDSN()
		if err != nil {
			return nil, err
		}
		dialector = mysql.Open(dsn)
	default:
		dbPath := cfg.GetSQLitePath()
		log.WithField("path", dbPath).Info("Connecting to SQLite database")
		sqlDB, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		// SQLite serialises writers; a single connection also keeps
		// in-memory databases alive for the lifetime of the pool.
		sqlDB.SetMaxOpenConns(1)
		dialector = sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        dbPath,
			Conn:       sqlDB,
		}
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		// Never log SQL: queries carry customer contact details.
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
		// Enquiry.sales_person_id is a weak reference.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := instrument(gormDB); err != nil {
		return nil, fmt.Errorf("failed to register query metrics: %w", err)
	}

	if cfg.IsPostgres() || cfg.IsMySQL() {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
		sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
		log.WithFields(map[string]any{
			"max_open": maxOpenConns,
			"max_idle": maxIdleConns,
		}).Info("Connection pool configured")
	}

	if err := ping(context.Background(), gormDB); err != nil {
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}
	return gormDB, nil
}

// Migrate creates or updates every table in Models.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Init opens, migrates and stores the process-wide connection.
func Init(cfg config.DatabaseConfig) error {
	gormDB, err := Open(cfg)
	if err != nil {
		return err
	}
	applog.For("DB").Info("Running database migrations")
	if err := Migrate(gormDB); err != nil {
		return err
	}
	db = gormDB
	applog.For("DB").Info("Database connected and migrated successfully")
	return nil
}

func ping(ctx context.Context, gormDB *gorm.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	if db == nil {
		applog.For("DB").Fatal("Database not initialized. Call database.Init() first.")
	}
	return db
}

// HealthCheck pings the process-wide connection.
func HealthCheck(ctx context.Context) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	return ping(ctx, db)
}

// Pinger returns a health check bound to gormDB.
func Pinger(gormDB *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		return ping(ctx, gormDB)
	}
}

// GetStats returns database connection statistics
func GetStats() (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
