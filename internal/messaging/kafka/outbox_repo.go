package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-metallurg/internal/shared/dbtx"

	"gorm.io/gorm"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"

	maxErrorMessage = 500
	retryStep       = 15 * time.Second
	maxRetrySteps   = 10
)

type OutboxEvent struct {
	ID            string     `gorm:"type:char(36);primaryKey"`
	RequestID     string     `gorm:"size:64"`
	AggregateType string     `gorm:"size:50;not null"`
	AggregateID   string     `gorm:"size:36;not null;index"`
	EventType     string     `gorm:"size:100;not null"`
	Topic         string     `gorm:"size:200;not null"`
	Payload       []byte     `gorm:"not null"`
	Status        string     `gorm:"size:16;not null;default:pending;index:idx_outbox_events_status_retry"`
	RetryCount    int        `gorm:"not null;default:0"`
	NextRetryAt   *time.Time `gorm:"index:idx_outbox_events_status_retry"`
	ErrorMessage  *string    `gorm:"size:500"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, retryCount int, reason string) error
}

type outboxRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if event.Status == "" {
		event.Status = OutboxStatusPending
	}
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	return r.conn(ctx).Create(&event).Error
}

// ListPending returns unsent events whose retry time has come, oldest first.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	events := make([]OutboxEvent, 0, limit)
	err := r.conn(ctx).
		Where("status IN ?", []string{OutboxStatusPending, OutboxStatusFailed}).
		Where("next_retry_at IS NULL OR next_retry_at <= ?", time.Now().UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return r.conn(ctx).Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        OutboxStatusSent,
			"processed_at":  now,
			"error_message": nil,
		}).Error
}

// MarkFailed schedules another attempt with a linear backoff capped at
// maxRetrySteps steps. retryCount is the count before this failure.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, retryCount int, reason string) error {
	if len(reason) > maxErrorMessage {
		reason = reason[:maxErrorMessage]
	}
	next := time.Now().UTC().Add(RetryDelay(retryCount))
	return r.conn(ctx).Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        OutboxStatusFailed,
			"retry_count":   gorm.Expr("retry_count + 1"),
			"error_message": reason,
			"next_retry_at": next,
		}).Error
}

// RetryDelay is the wait before the next publish attempt of an event that
// has already failed retryCount times.
func RetryDelay(retryCount int) time.Duration {
	steps := retryCount + 1
	if steps > maxRetrySteps {
		steps = maxRetrySteps
	}
	return time.Duration(steps) * retryStep
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
