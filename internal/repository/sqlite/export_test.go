package sqlite

import "database/sql"

// DBOf exposes the handle so tests can write rows the repositories refuse to.
func DBOf(s *Store) *sql.DB {
	return s.db
}
