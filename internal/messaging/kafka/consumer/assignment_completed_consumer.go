package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-metallurg/internal/events"
	"go-metallurg/internal/techcard"
	techcarderrors "go-metallurg/internal/techcard/errors"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	retryInitial = 500 * time.Millisecond
	retryMax     = 30 * time.Second
)

// retryDelay doubles from retryInitial and caps at retryMax.
var retryDelay = func(attempt int) time.Duration {
	d := retryInitial
	for i := 1; i < attempt && d < retryMax; i++ {
		d *= 2
	}
	if d > retryMax {
		d = retryMax
	}
	return d
}

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type ExecutionRecorder interface {
	RecordAssignmentExecution(ctx context.Context, in techcard.AssignmentExecution) error
}

// ConsumeAssignmentCompleted rolls completed shift output into tech card
// totals. A message is committed once handled or found unusable. A transient
// failure retries the same message with backoff before the next one is
// fetched, since a later commit would move the offset past it.
func ConsumeAssignmentCompleted(
	ctx context.Context,
	reader MessageReader,
	recorder ExecutionRecorder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.assignment_completed")
	log.Info("assignment completed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("assignment completed consumer stopped")
				return
			}
			log.Error("fetch assignment completed message failed", zap.Error(err))
			continue
		}

		for attempt := 1; !handleAssignmentCompleted(ctx, msg, recorder, log); attempt++ {
			delay := retryDelay(attempt)
			log.Warn("retrying assignment completed message",
				zap.Int64("offset", msg.Offset),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)

			select {
			case <-ctx.Done():
				log.Info("assignment completed consumer stopped")
				return
			case <-time.After(delay):
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit assignment completed message failed", zap.Error(err))
		}
	}
}

// handleAssignmentCompleted reports whether the message may be committed.
func handleAssignmentCompleted(
	ctx context.Context,
	msg kafkago.Message,
	recorder ExecutionRecorder,
	log *zap.Logger,
) bool {
	var event events.AssignmentCompletedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode assignment completed event failed", zap.Error(err))
		return true
	}

	log = log.With(zap.String("assignment_id", event.AssignmentID))
	if event.RequestID != "" {
		log = log.With(zap.String("request_id", event.RequestID))
	}

	if event.TechCardID == "" || event.ActualQuantity <= 0 {
		log.Debug("assignment has no tech card output, skipping")
		return true
	}

	in, err := toExecution(event)
	if err != nil {
		log.Error("assignment completed event has malformed ids", zap.Error(err))
		return true
	}

	err = recorder.RecordAssignmentExecution(ctx, in)
	switch {
	case err == nil:
		log.Info("assignment output recorded",
			zap.String("tech_card_id", event.TechCardID),
			zap.Int("quantity", event.ActualQuantity),
		)
		return true
	case errors.Is(err, techcarderrors.ErrExecutionAlreadyRecorded):
		log.Warn("assignment output already recorded, skipping")
		return true
	case errors.Is(err, techcarderrors.ErrTechCardNotFound):
		log.Warn("tech card of assignment no longer exists, skipping",
			zap.String("tech_card_id", event.TechCardID),
		)
		return true
	default:
		log.Error("record assignment output failed", zap.Error(err))
		return false
	}
}

func toExecution(event events.AssignmentCompletedEvent) (techcard.AssignmentExecution, error) {
	assignmentID, err := uuid.Parse(event.AssignmentID)
	if err != nil {
		return techcard.AssignmentExecution{}, err
	}
	operatorID, err := uuid.Parse(event.OperatorID)
	if err != nil {
		return techcard.AssignmentExecution{}, err
	}
	techCardID, err := uuid.Parse(event.TechCardID)
	if err != nil {
		return techcard.AssignmentExecution{}, err
	}
	return techcard.AssignmentExecution{
		TechCardID:   techCardID,
		OperatorID:   operatorID,
		AssignmentID: assignmentID,
		Quantity:     event.ActualQuantity,
	}, nil
}
