package storage

import (
	"fmt"

	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/storage/gormstore"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Open returns the repository for driver. jsonPath is used by the json
// driver and dbPath by the sqlite driver.
func Open(driver, jsonPath, dbPath string) (domain.Repository, error) {
	switch driver {
	case "", DriverJSON:
		return New(jsonPath)
	case DriverSQLite:
		return gormstore.Open(dbPath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
