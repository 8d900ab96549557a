package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"setflow/internal/domain"
	"setflow/internal/port"
)

type notificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo creates a new PostgreSQL-backed NotificationRepository.
func NewNotificationRepo(db *sqlx.DB) port.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now().UTC()

	query := `INSERT INTO notifications (id, org_id, member_id, kind, message, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.OrgID, n.MemberID, n.Kind, n.Message, n.ReadAt, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("notificationRepo.Create: %w", err)
	}
	return nil
}

func (r *notificationRepo) ListByMember(ctx context.Context, orgID, memberID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error) {
	countQuery := "SELECT COUNT(*) FROM notifications WHERE org_id = $1 AND member_id = $2"
	listQuery := `SELECT * FROM notifications WHERE org_id = $1 AND member_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	if unreadOnly {
		countQuery = "SELECT COUNT(*) FROM notifications WHERE org_id = $1 AND member_id = $2 AND read_at IS NULL"
		listQuery = `SELECT * FROM notifications WHERE org_id = $1 AND member_id = $2 AND read_at IS NULL
			ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, orgID, memberID); err != nil {
		return nil, 0, fmt.Errorf("notificationRepo.ListByMember count: %w", err)
	}

	var notifications []domain.Notification
	if err := r.db.SelectContext(ctx, &notifications, listQuery, orgID, memberID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("notificationRepo.ListByMember: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, orgID, memberID, notificationID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = NOW()
		WHERE id = $1 AND org_id = $2 AND member_id = $3 AND read_at IS NULL`,
		notificationID, orgID, memberID)
	if err != nil {
		return fmt.Errorf("notificationRepo.MarkRead: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Already read is fine; unknown id is not.
		var exists bool
		err = r.db.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND org_id = $2 AND member_id = $3)",
			notificationID, orgID, memberID)
		if err != nil {
			return fmt.Errorf("notificationRepo.MarkRead exists: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
	}
	return nil
}
