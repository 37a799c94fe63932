package service

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"marsdash/internal/marstime"
	"marsdash/internal/models"

	"github.com/google/uuid"
)

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// GenerateWeather сгенерированная телеметрия станции марсохода за сол.
// Для одной пары (rover, sol) значения всегда одинаковые, меняется только GeneratedAt.
func GenerateWeather(rover marstime.RoverLocation, sol int, generatedAt time.Time) models.WeatherReport {
	rng := rand.New(rand.NewSource(weatherSeed(rover.Slug, sol)))

	start := rover.SolStart(sol)
	ls := marstime.SolarLongitude(marstime.EarthToMSD(start) + 0.5)

	// перигелий около Ls 250: теплее и выше давление
	seasonal := math.Cos(marstime.DegreesToRadians(ls - 250))

	maxTemp := -10 + 8*seasonal - math.Abs(rover.Latitude)*0.3 + randFloat(rng, -3, 3)
	minTemp := maxTemp - randFloat(rng, 55, 70)
	pressure := 750 + 90*seasonal + randFloat(rng, -10, 10)
	windSpeed := randFloat(rng, 1, 18)
	direction := compassPoints[rng.Intn(len(compassPoints))]

	dustChance := 0.1
	if ls >= 180 {
		dustChance = 0.45
	}
	opacity, uv := "Sunny", "moderate"
	if rng.Float64() < dustChance {
		opacity, uv = "Dusty", "low"
	} else if seasonal > 0.5 {
		uv = "high"
	}

	return models.WeatherReport{
		ID:            uuid.New(),
		Rover:         rover.Slug,
		Sol:           sol,
		EarthDate:     start,
		Ls:            round2(ls),
		Season:        marstime.Season(ls),
		MinTemp:       round2(minTemp),
		MaxTemp:       round2(maxTemp),
		Pressure:      round2(pressure),
		WindSpeed:     round2(windSpeed),
		WindDirection: direction,
		UVIndex:       uv,
		Opacity:       opacity,
		GeneratedAt:   generatedAt,
	}
}

func weatherSeed(rover string, sol int) int64 {
	h := fnv.New64a()
	h.Write([]byte(rover))
	return int64(h.Sum64()>>1) ^ int64(sol)
}

func randFloat(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
