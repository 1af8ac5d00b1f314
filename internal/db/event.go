package db

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UsageEvent records that a session used a feature. Payload carries the
// front-end and the mode active when the feature ran, never the converted
// content.
type UsageEvent struct {
	ID        uint           `gorm:"primaryKey"`
	SessionID string         `gorm:"size:64;index;not null"`
	Feature   string         `gorm:"size:64;index;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

func RecordUsage(conn *gorm.DB, sessionID, feature string, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.Create(&UsageEvent{
		SessionID: sessionID,
		Feature:   feature,
		Payload:   datatypes.JSON(raw),
	}).Error
}

type FeatureCount struct {
	Feature string `json:"feature"`
	Count   int64  `json:"count"`
}

// FeatureCounts totals usage events per feature, most used first.
func FeatureCounts(conn *gorm.DB) ([]FeatureCount, error) {
	var counts []FeatureCount
	err := conn.Model(&UsageEvent{}).
		Select("feature, count(*) as count").
		Group("feature").
		Order("count desc, feature").
		Scan(&counts).Error
	return counts, err
}
