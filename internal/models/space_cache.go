package models

import (
	"time"

	"gorm.io/datatypes"
)

// SpaceCache сырой ответ внешнего API, последняя удачная копия по источнику.
type SpaceCache struct {
	ID        uint           `gorm:"primaryKey"`
	Source    string         `gorm:"not null;index"`
	FetchedAt time.Time      `gorm:"not null;default:now()"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}
