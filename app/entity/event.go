package entity

import (
	"database/sql"
	"time"
)

type Importance string

const (
	ImportanceNormal    Importance = "NORMAL"
	ImportanceImportant Importance = "IMPORTANT"
	ImportanceCritical  Importance = "CRITICAL"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceNormal, ImportanceImportant, ImportanceCritical:
		return true
	}
	return false
}

type Event struct {
	ID          uint64
	UserID      uint64
	Title       string
	Description sql.NullString
	Date        time.Time
	Importance  Importance
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
