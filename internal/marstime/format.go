package marstime

import (
	"fmt"
	"math"
)

const secondsPerDay = 24 * 3600

// DecimalTimeToHMS форматирует десятичные часы как "HH:MM:SS".
// Округление выполняется один раз до целых секунд, результат приводится к [00:00:00, 23:59:59].
// Для NaN и бесконечности возвращается "00:00:00".
func DecimalTimeToHMS(decimalHours float64) string {
	rounded := math.Round(decimalHours * 3600)
	if math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		return "00:00:00"
	}

	// остаток от суток берётся до перевода в int
	total := int(math.Mod(rounded, secondsPerDay))
	if total < 0 {
		total += secondsPerDay
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
