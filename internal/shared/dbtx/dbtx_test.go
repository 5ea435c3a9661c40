package dbtx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	t.Run("postgres unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"})
		assert.True(t, IsDuplicateKey(err))
		assert.True(t, IsDuplicateKey(err, "username"))
		assert.False(t, IsDuplicateKey(err, "part_number"))
	})

	t.Run("mysql duplicate entry", func(t *testing.T) {
		err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ivanov' for key 'users.uq_users_username'"}
		assert.True(t, IsDuplicateKey(err))
		assert.True(t, IsDuplicateKey(err, "uq_users_username"))
	})

	t.Run("gorm translated error", func(t *testing.T) {
		assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.False(t, IsDuplicateKey(nil))
		assert.False(t, IsDuplicateKey(errors.New("connection refused")))
		assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1045}))
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(&mysql.MySQLError{Number: 1452}))
	assert.True(t, IsForeignKeyViolation(&mysql.MySQLError{Number: 1451}))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
}
