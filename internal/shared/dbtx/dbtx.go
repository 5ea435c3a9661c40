// Package dbtx lets gorm repositories run inside a *sql.Tx owned by a service.
package dbtx

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Conn returns a session bound to ctx that executes on tx when tx is set.
// gorm's own default transaction is skipped on a *sql.Tx, so statements join
// the caller's transaction.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	g := db.WithContext(ctx)
	if tx == nil {
		return g
	}
	g = g.Session(&gorm.Session{NewDB: true})
	g.Statement.ConnPool = tx
	return g
}

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	mysqlForeignKeyError = 1452
	mysqlRowReferenced   = 1451
	pgForeignKeyError    = "23503"
)

// IsDuplicateKey reports a unique constraint violation. When constraint is not
// empty the violated index must contain it.
func IsDuplicateKey(err error, constraint ...string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	name := ""
	if len(constraint) > 0 {
		name = strings.ToLower(constraint[0])
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return name == "" || strings.Contains(strings.ToLower(pgErr.ConstraintName), name)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return name == "" || strings.Contains(strings.ToLower(myErr.Message), name)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "duplicate entry") {
		return name == "" || strings.Contains(msg, name)
	}
	return false
}

// IsForeignKeyViolation reports a reference to a missing parent row, or a
// delete of a row that is still referenced.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyError
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlForeignKeyError || myErr.Number == mysqlRowReferenced
	}
	return false
}
