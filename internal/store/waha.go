package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/msgsystec/backoffice/types"
)

// WahaSessionRepository handles persistence for WAHA gateway sessions.
type WahaSessionRepository struct {
	db *sql.DB
}

func NewWahaSessionRepository(db *sql.DB) *WahaSessionRepository {
	return &WahaSessionRepository{db: db}
}

func (r *WahaSessionRepository) GetByID(ctx context.Context, id string) (types.WahaSession, error) {
	const query = `
		SELECT id, user_id, status, created_at, updated_at
		FROM waha_sessions
		WHERE id = $1`
	var session types.WahaSession
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.WahaSession{}, ErrNotFound
		}
		return types.WahaSession{}, err
	}
	return session, nil
}

// ListByUser returns the user's sessions, newest first.
func (r *WahaSessionRepository) ListByUser(ctx context.Context, userID string) ([]types.WahaSession, error) {
	const query = `
		SELECT id, user_id, status, created_at, updated_at
		FROM waha_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []types.WahaSession{}
	for rows.Next() {
		var session types.WahaSession
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Status,
			&session.CreatedAt,
			&session.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *WahaSessionRepository) Create(ctx context.Context, session types.WahaSession) (types.WahaSession, error) {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	const query = `
		INSERT INTO waha_sessions (id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.Status,
		session.CreatedAt,
		session.UpdatedAt,
	); err != nil {
		return types.WahaSession{}, err
	}
	return session, nil
}

// UpdateStatus flips a session between active and inactive.
func (r *WahaSessionRepository) UpdateStatus(ctx context.Context, id, status string) (types.WahaSession, error) {
	const query = `
		UPDATE waha_sessions
		SET status = $1,
			updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return types.WahaSession{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.WahaSession{}, err
	}
	if affected == 0 {
		return types.WahaSession{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *WahaSessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM waha_sessions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
