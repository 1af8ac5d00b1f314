package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Session is one browser session. Only its mode and activity times are
// stored; conversion content never leaves memory.
type Session struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Mode       string    `gorm:"size:16;not null"`
	LastSeenAt time.Time `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TouchSession inserts the session or refreshes its mode and last-seen time.
func TouchSession(conn *gorm.DB, id, mode string, now time.Time) error {
	row := Session{ID: id, Mode: mode, LastSeenAt: now}
	return conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"mode", "last_seen_at", "updated_at"}),
	}).Create(&row).Error
}
