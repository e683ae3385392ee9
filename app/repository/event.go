package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-calendar/app/entity"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (user_id, title, description, date, importance, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		event.UserID,
		event.Title,
		event.Description,
		event.Date,
		event.Importance,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = uint64(id)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint64) (*entity.Event, error) {
	query := `
		SELECT id, user_id, title, description, date, importance, created_at, updated_at
		FROM events WHERE id = ?
	`
	event := &entity.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.UserID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Importance,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) ListByUserID(ctx context.Context, userID uint64) ([]*entity.Event, error) {
	query := `
		SELECT id, user_id, title, description, date, importance, created_at, updated_at
		FROM events WHERE user_id = ? ORDER BY date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*entity.Event, 0)
	for rows.Next() {
		event := &entity.Event{}
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Importance,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events SET
			title = ?,
			description = ?,
			date = ?,
			importance = ?,
			updated_at = ?
		WHERE id = ?
	`
	event.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Importance,
		event.UpdatedAt,
		event.ID,
	)
	return err
}

func (r *EventRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM events WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
