package outboxrepo

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxErrorLength bounds the stored last_error text.
const maxErrorLength = 1000

var (
	_ ports.Notifier           = (*GormOutboxRepository)(nil)
	_ ports.NotificationOutbox = (*GormOutboxRepository)(nil)
)

// GormOutboxRepository implements ports.Notifier and ports.NotificationOutbox using GORM.
type GormOutboxRepository struct {
	db    *gorm.DB
	clock kernel.Clock
}

// NewGormOutboxRepository creates a new outbox repository.
func NewGormOutboxRepository(db *gorm.DB, clock kernel.Clock) *GormOutboxRepository {
	return &GormOutboxRepository{db: db, clock: clock}
}

// Notify enqueues a message. A message whose key is already stored is ignored.
func (r *GormOutboxRepository) Notify(ctx context.Context, msg ports.Message) error {
	if msg.Key == "" {
		return errs.NewValueIsRequiredError("key")
	}
	if msg.Recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}

	dto := fromMessage(msg, r.clock.Now())
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "dedup_key"}}, DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return errors.Wrapf(err, "enqueue notification for order %d", msg.OrderID.Int64())
	}

	return nil
}

// ListPending returns up to limit pending notifications, oldest first.
func (r *GormOutboxRepository) ListPending(ctx context.Context, limit int) ([]ports.PendingNotification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "list pending notifications")
	}

	pending := make([]ports.PendingNotification, 0, len(dtos))
	for _, dto := range dtos {
		pending = append(pending, toPending(dto))
	}
	return pending, nil
}

// MarkSent records a successful delivery.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  StatusSent,
			"sent_at": at,
		})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "mark notification %d sent", id)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id)
	}
	return nil
}

// MarkAttemptFailed increments the attempt counter and stores the cause. The row
// becomes failed once the counter reaches maxAttempts.
func (r *GormOutboxRepository) MarkAttemptFailed(ctx context.Context, id int64, cause error, maxAttempts int) error {
	lastError := "unknown error"
	if cause != nil {
		lastError = truncateError(cause.Error())
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": lastError,
			"status": gorm.Expr("CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
				maxAttempts, StatusFailed, StatusPending),
		})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "record failed attempt of notification %d", id)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id)
	}
	return nil
}

// truncateError makes s valid UTF-8 and cuts it to at most maxErrorLength bytes
// without splitting a character.
func truncateError(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if len(s) <= maxErrorLength {
		return s
	}
	cut := maxErrorLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
