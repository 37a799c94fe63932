package models

import (
	"time"

	"github.com/google/uuid"
)

type WeatherReport struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Rover         string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_weather_rover_sol" json:"rover"`
	Sol           int       `gorm:"not null;uniqueIndex:idx_weather_rover_sol" json:"sol"`
	EarthDate     time.Time `gorm:"not null" json:"earth_date"`
	Ls            float64   `gorm:"type:numeric(6,2);not null" json:"ls"`
	Season        string    `gorm:"type:varchar(32)" json:"season"`
	MinTemp       float64   `gorm:"type:numeric(6,2);not null" json:"min_temp"`
	MaxTemp       float64   `gorm:"type:numeric(6,2);not null" json:"max_temp"`
	Pressure      float64   `gorm:"type:numeric(7,2);not null" json:"pressure"`
	WindSpeed     float64   `gorm:"type:numeric(5,2)" json:"wind_speed"`
	WindDirection string    `gorm:"type:varchar(4)" json:"wind_direction"`
	UVIndex       string    `gorm:"type:varchar(16)" json:"uv_index"`
	Opacity       string    `gorm:"type:varchar(16)" json:"opacity"`
	GeneratedAt   time.Time `gorm:"not null" json:"generated_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"-"`
}
