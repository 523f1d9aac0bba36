package sql

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"

	_queryTimeout      = 5 * time.Second
	_postgresPasswdEnv = "ECOTRONIX_HUB_POSTGRES_PASSWORD"
)

// Open connects to the journal database. dsn is ignored by the memory driver,
// which gives every call its own private database.
func Open(driver, dsn string) (*DB, error) {
	var dialector gorm.Dialector
	system := driver
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverMemory:
		dialector = sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
		system = DriverSQLite
	case DriverPostgres:
		if pass, ok := os.LookupEnv(_postgresPasswdEnv); ok {
			dsn = fmt.Sprintf("%s password=%s", dsn, pass)
		}
		dialector = postgres.Open(dsn)
		system = "postgresql"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	return &DB{DB: gormDB, system: system, timeout: _queryTimeout}, nil
}

func NewMemoryORM() (*DB, error) {
	return Open(DriverMemory, "")
}
