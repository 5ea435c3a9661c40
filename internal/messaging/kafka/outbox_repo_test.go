package kafka

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return db, mock
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 15*time.Second, RetryDelay(0))
	assert.Equal(t, 60*time.Second, RetryDelay(3))
	assert.Equal(t, 150*time.Second, RetryDelay(9))
	assert.Equal(t, 150*time.Second, RetryDelay(40))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := OutboxEvent{ID: "1", Topic: "t", Payload: []byte("{}"), Status: OutboxStatusPending}
	assert.NoError(t, ValidateOutboxEvent(valid))

	noTopic := valid
	noTopic.Topic = ""
	assert.Error(t, ValidateOutboxEvent(noTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(badStatus))
}

func TestOutboxRepository_Create_RejectsEmptyPayload(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepository(db)

	err := repo.Create(context.Background(), OutboxEvent{ID: "1", Topic: "t"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `outbox_events` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(context.Background(), "e1", 2, "broker unavailable")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
