package models

import (
	"time"

	"gorm.io/datatypes"
)

// MarsTimeLog периодический снимок марсианского времени.
type MarsTimeLog struct {
	ID         uint           `gorm:"primaryKey"`
	ComputedAt time.Time      `gorm:"not null;default:now()"`
	MSD        float64        `gorm:"not null"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}
