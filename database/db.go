package database

import "database/sql"

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx so query helpers can
// run inside or outside a transaction.
type DBTX interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
}
