package db

import "database/sql"

// DB wraps the sql pool so stores depend on this package, not on a
// concrete driver.
type DB struct {
	*sql.DB
}
