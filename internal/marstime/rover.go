package marstime

import (
	"strings"
	"time"
)

// RoverLocation справочные данные о месте посадки марсохода.
type RoverLocation struct {
	Name             string
	Slug             string
	Site             string
	Longitude        float64 // градусы, восточная долгота положительная
	Latitude         float64
	Landing          time.Time
	LandingSolOffset int
}

var (
	Curiosity = RoverLocation{
		Name:      "Curiosity",
		Slug:      "curiosity",
		Site:      "Gale Crater",
		Longitude: 137.4417,
		Latitude:  -4.5895,
		Landing:   time.Date(2012, time.August, 6, 5, 17, 57, 0, time.UTC),
	}

	Perseverance = RoverLocation{
		Name:      "Perseverance",
		Slug:      "perseverance",
		Site:      "Jezero Crater",
		Longitude: 77.4509,
		Latitude:  18.4447,
		Landing:   time.Date(2021, time.February, 18, 20, 55, 0, 0, time.UTC),
	}
)

// Rovers возвращает все поддерживаемые марсоходы.
func Rovers() []RoverLocation {
	return []RoverLocation{Curiosity, Perseverance}
}

// RoverBySlug ищет марсоход по имени без учёта регистра.
func RoverBySlug(slug string) (RoverLocation, bool) {
	for _, r := range Rovers() {
		if strings.EqualFold(r.Slug, slug) {
			return r, true
		}
	}
	return RoverLocation{}, false
}

// Sol номер сола миссии для момента t.
func (r RoverLocation) Sol(t time.Time) int {
	return MissionSol(r.Landing, t) + r.LandingSolOffset
}

// SolStart земной момент начала сола миссии с номером sol.
func (r RoverLocation) SolStart(sol int) time.Time {
	return MSDToEarth(EarthToMSD(r.Landing) + float64(sol-r.LandingSolOffset))
}

// WithLongitude копия с другой долготой.
func (r RoverLocation) WithLongitude(longitude float64) RoverLocation {
	r.Longitude = longitude
	return r
}

// RoverTime местное время одного марсохода.
type RoverTime struct {
	Rover     string  `json:"rover"`
	Site      string  `json:"site"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Sol       int     `json:"sol"`
	LTST      string  `json:"ltst"`
	LMST      string  `json:"lmst"`
}

func RoverClock(t time.Time, r RoverLocation) RoverTime {
	return RoverTime{
		Rover:     r.Name,
		Site:      r.Site,
		Longitude: r.Longitude,
		Latitude:  r.Latitude,
		Sol:       r.Sol(t),
		LTST:      LTST(t, r.Longitude),
		LMST:      DecimalTimeToHMS(LMSTHours(t, r.Longitude)),
	}
}
