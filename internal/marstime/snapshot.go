package marstime

import "time"

// Snapshot марсианское время для обоих марсоходов на один момент.
type Snapshot struct {
	MSD              float64 `json:"msd"`
	MTC              string  `json:"mtc"`
	CuriosityLTST    string  `json:"curiosityLTST"`
	PerseveranceLTST string  `json:"perseveranceLTST"`
	CuriositySol     int     `json:"curiositySol"`
	PerseveranceSol  int     `json:"perseveranceSol"`
	EarthTime        string  `json:"earthTime"`
}

// RoverLongitudes необязательные переопределения долгот.
type RoverLongitudes struct {
	Curiosity    *float64
	Perseverance *float64
}

// CalculateMarsTime считает снимок для стандартных мест посадки.
// Нулевое t означает текущий момент.
func CalculateMarsTime(t time.Time, lon *RoverLongitudes) Snapshot {
	curiosity, perseverance := Curiosity, Perseverance
	if lon != nil {
		if lon.Curiosity != nil {
			curiosity = curiosity.WithLongitude(*lon.Curiosity)
		}
		if lon.Perseverance != nil {
			perseverance = perseverance.WithLongitude(*lon.Perseverance)
		}
	}
	return Calculate(t, curiosity, perseverance)
}

// Calculate то же самое для произвольных мест посадки.
func Calculate(t time.Time, curiosity, perseverance RoverLocation) Snapshot {
	if t.IsZero() {
		t = time.Now()
	}
	t = t.UTC()

	return Snapshot{
		MSD:              EarthToMSD(t),
		MTC:              MTC(t),
		CuriosityLTST:    LTST(t, curiosity.Longitude),
		PerseveranceLTST: LTST(t, perseverance.Longitude),
		CuriositySol:     curiosity.Sol(t),
		PerseveranceSol:  perseverance.Sol(t),
		EarthTime:        t.Format("15:04:05"),
	}
}
