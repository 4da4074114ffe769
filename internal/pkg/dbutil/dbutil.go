package dbutil

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Finalize rewrites the `?` placeholders produced by the gendry builder into
// the form the target driver expects. sqlite takes them as-is.
func Finalize(driver, query string, args []interface{}) (string, []interface{}) {
	if driver == "postgres" {
		return sqlx.Rebind(sqlx.DOLLAR, query), args
	}
	return query, args
}

func IsConflict(err error) bool {
	if pgErr, ok := err.(*pq.Error); ok {
		return pgErr.Code == "23505"
	}
	return false
}
