package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-calendar/app/entity"
	"github.com/vibast-solutions/ms-go-calendar/app/repository"
	"github.com/vibast-solutions/ms-go-calendar/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertEventQuery = `(?s)INSERT INTO events \(user_id, title, description, date, importance, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?, \?\)`
	findEventQuery   = `(?s)SELECT id, user_id, title, description, date, importance, created_at, updated_at\s+FROM events WHERE id = \?`
	listEventsQuery  = `(?s)SELECT id, user_id, title, description, date, importance, created_at, updated_at\s+FROM events WHERE user_id = \? ORDER BY date ASC`
	updateEventQuery = `(?s)UPDATE events SET\s+title = \?,\s+description = \?,\s+date = \?,\s+importance = \?,\s+updated_at = \?\s+WHERE id = \?`
	deleteEventQuery = `DELETE FROM events WHERE id = \?`
)

var eventColumns = []string{
	"id",
	"user_id",
	"title",
	"description",
	"date",
	"importance",
	"created_at",
	"updated_at",
}

func newEventServiceWithMock(t *testing.T) (*service.EventService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return service.NewEventService(repository.NewEventRepository(db)), mock
}

func expectEventRow(mock sqlmock.Sqlmock, eventID, ownerID uint64) {
	now := time.Now()
	mock.ExpectQuery(findEventQuery).
		WithArgs(eventID).
		WillReturnRows(sqlmock.NewRows(eventColumns).AddRow(
			eventID,
			ownerID,
			"Team Meeting",
			sql.NullString{String: "Weekly team sync", Valid: true},
			now.Add(24*time.Hour),
			"NORMAL",
			now,
			now,
		))
}

func TestEventService_GetNotFound(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	mock.ExpectQuery(findEventQuery).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(eventColumns))

	_, err := svc.Get(context.Background(), 1, 99)
	assert.ErrorIs(t, err, service.ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_GetForbidden(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	expectEventRow(mock, 10, 2)

	_, err := svc.Get(context.Background(), 1, 10)
	assert.ErrorIs(t, err, service.ErrEventForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_GetOwned(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	expectEventRow(mock, 10, 1)

	event, err := svc.Get(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), event.ID)
	assert.Equal(t, uint64(1), event.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_CreateStampsOwner(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	desc := "Submit final project deliverables"
	date := time.Date(2024, 3, 25, 17, 0, 0, 0, time.UTC)

	mock.ExpectExec(insertEventQuery).
		WithArgs(
			uint64(1),
			"Project Deadline",
			sql.NullString{String: desc, Valid: true},
			date,
			"CRITICAL",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(5, 1))

	event, err := svc.Create(context.Background(), 1, service.EventInput{
		Title:       "Project Deadline",
		Description: &desc,
		Date:        date,
		Importance:  entity.ImportanceCritical,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), event.ID)
	assert.Equal(t, uint64(1), event.UserID)
	assert.Equal(t, entity.ImportanceCritical, event.Importance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_CreateDefaultsImportance(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	date := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(insertEventQuery).
		WithArgs(
			uint64(1),
			"Team Meeting",
			sql.NullString{},
			date,
			"NORMAL",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(6, 1))

	event, err := svc.Create(context.Background(), 1, service.EventInput{
		Title: "Team Meeting",
		Date:  date,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ImportanceNormal, event.Importance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_CreateRejectsUnknownImportance(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	_, err := svc.Create(context.Background(), 1, service.EventInput{
		Title:      "Team Meeting",
		Date:       time.Now(),
		Importance: "URGENT",
	})
	assert.ErrorIs(t, err, service.ErrInvalidImportance)
	// Validation fails before the store is touched.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_UpdateChecksOwnershipFirst(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	expectEventRow(mock, 10, 2)

	_, err := svc.Update(context.Background(), 1, 10, service.EventInput{
		Title: "Hijacked",
		Date:  time.Now(),
	})
	assert.ErrorIs(t, err, service.ErrEventForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_Update(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	expectEventRow(mock, 10, 1)

	newDate := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(updateEventQuery).
		WithArgs(
			"Team Meeting (moved)",
			sql.NullString{},
			newDate,
			"IMPORTANT",
			sqlmock.AnyArg(),
			uint64(10),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	event, err := svc.Update(context.Background(), 1, 10, service.EventInput{
		Title:      "Team Meeting (moved)",
		Date:       newDate,
		Importance: entity.ImportanceImportant,
	})
	require.NoError(t, err)
	assert.Equal(t, "Team Meeting (moved)", event.Title)
	assert.Equal(t, entity.ImportanceImportant, event.Importance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_DeleteNotFound(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	mock.ExpectQuery(findEventQuery).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(eventColumns))

	err := svc.Delete(context.Background(), 1, 99)
	assert.ErrorIs(t, err, service.ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_Delete(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	expectEventRow(mock, 10, 1)
	mock.ExpectExec(deleteEventQuery).
		WithArgs(uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Delete(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventService_List(t *testing.T) {
	svc, mock := newEventServiceWithMock(t)

	early := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 25, 17, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(listEventsQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(uint64(1), uint64(1), "Team Meeting", sql.NullString{}, early, "NORMAL", now, now).
			AddRow(uint64(2), uint64(1), "Project Deadline", sql.NullString{}, late, "CRITICAL", now, now))

	events, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Date.Before(events[1].Date))
	assert.NoError(t, mock.ExpectationsWereMet())
}
