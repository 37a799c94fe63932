// Package marstime переводит земное время в марсианское по алгоритму Mars24 (NASA GISS):
// Julian Date -> Mars Sol Date -> MTC, LTST, номер сола миссии, Ls и уравнение времени.
// Все функции чистые и без состояния, их можно вызывать из любых горутин.
package marstime

import (
	"math"
	"time"
)

const (
	// SolSeconds длительность марсианских солнечных суток в земных секундах.
	SolSeconds = 88775.244147
	// MSDEpochOffset значение MSD на опорную дату эпохи.
	MSDEpochOffset = 44796.0
	// EarthToMarsDayRatio отношение сола к земным суткам.
	EarthToMarsDayRatio = 1.027491252
	// J2000 юлианская дата эпохи J2000.0 (2000-01-01 12:00 UTC).
	J2000 = 2451545.0
	// MarsEccentricity эксцентриситет орбиты Марса.
	MarsEccentricity = 0.0934
	// MarsMeanMotion среднее движение (средняя аномалия), градусов за сол.
	MarsMeanMotion = 0.52402075
)

// JulianDate возвращает юлианскую дату для момента t (UTC, точность до миллисекунды).
// Используется пролептический григорианский календарь, поэтому формула годится
// и для далёкого прошлого, и для будущего.
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	year := t.Year()
	month := int(t.Month())
	day := t.Day()

	a := floorDiv(14-month, 12)
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := day + floorDiv(153*m+2, 5) + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045

	millis := t.Nanosecond() / int(time.Millisecond)
	seconds := float64(t.Second()) + float64(millis)/1000
	fracDay := (float64(t.Hour()) + float64(t.Minute())/60 + seconds/3600) / 24

	return float64(jdn) + fracDay - 0.5
}

// EarthToMSD возвращает Mars Sol Date для момента t.
func EarthToMSD(t time.Time) float64 {
	deltaJ2000 := JulianDate(t) - J2000
	return (deltaJ2000-4.5)/EarthToMarsDayRatio + MSDEpochOffset
}

// unixEpochJD юлианская дата 1970-01-01 00:00 UTC.
const unixEpochJD = 2440587.5

// MSDToEarth обратное к EarthToMSD преобразование, с точностью до миллисекунды.
func MSDToEarth(msd float64) time.Time {
	jd := (msd-MSDEpochOffset)*EarthToMarsDayRatio + 4.5 + J2000
	millis := math.Round((jd - unixEpochJD) * 86400 * 1000)
	return time.UnixMilli(int64(millis)).UTC()
}

// MTCHours координированное марсианское время в десятичных часах [0, 24).
func MTCHours(t time.Time) float64 {
	return normalize(24*EarthToMSD(t), 24)
}

// MTC координированное марсианское время в формате "HH:MM:SS".
func MTC(t time.Time) string {
	return DecimalTimeToHMS(MTCHours(t))
}

// LTSTHours местное истинное солнечное время на долготе longitude (градусы,
// восточная положительная) в десятичных часах [0, 24).
func LTSTHours(t time.Time, longitude float64) float64 {
	msd := EarthToMSD(t)
	eot := EquationOfTime(msd)
	return normalize(24*msd+longitude/15.0+eot, 24)
}

// LTST местное истинное солнечное время в формате "HH:MM:SS".
func LTST(t time.Time, longitude float64) string {
	return DecimalTimeToHMS(LTSTHours(t, longitude))
}

// LMSTHours местное среднее солнечное время, без поправки уравнения времени.
func LMSTHours(t time.Time, longitude float64) float64 {
	return normalize(24*EarthToMSD(t)+longitude/15.0, 24)
}

// MissionSol номер сола миссии: 0 в момент посадки.
func MissionSol(landing, current time.Time) int {
	return int(math.Floor(EarthToMSD(current) - EarthToMSD(landing)))
}

// orbit промежуточные величины теории Mars24 для заданного MSD, в градусах.
type orbit struct {
	meanAnomaly float64
	fmsAngle    float64
	pbs         float64
	center      float64
}

// ряд возмущений: амплитуда и фаза, градусы
var perturbations = [...]struct{ amplitude, phase float64 }{
	{0.0071, 25.37},
	{0.0057, 195.8},
	{0.0039, 53.5},
}

// уравнение центра: амплитуды гармоник 1M..5M
var centerTerms = [...]float64{10.691, 0.623, 0.05, 0.005, 0.0005}

func orbitAt(msd float64) orbit {
	o := orbit{
		meanAnomaly: normalize(19.387+MarsMeanMotion*msd, 360),
		fmsAngle:    normalize(270.3863+0.5240384*msd, 360),
	}

	for _, p := range perturbations {
		o.pbs += p.amplitude * math.Cos(DegreesToRadians(0.985626*msd+p.phase))
	}

	m := DegreesToRadians(o.meanAnomaly)
	for i, amplitude := range centerTerms {
		o.center += amplitude * math.Sin(float64(i+1)*m)
	}

	return o
}

// trueMinusMean ν - M: уравнение центра вместе с возмущениями.
func (o orbit) trueMinusMean() float64 {
	return o.center + o.pbs
}

func (o orbit) solarLongitude() float64 {
	return normalize(o.fmsAngle+o.trueMinusMean(), 360)
}

// SolarLongitude ареоцентрическая долгота Солнца Ls в градусах [0, 360).
func SolarLongitude(msd float64) float64 {
	return orbitAt(msd).solarLongitude()
}

// EquationOfTime уравнение времени в часах.
// EOT = 2.861 sin 2Ls - 0.071 sin 4Ls + 0.002 sin 6Ls - (ν - M), все члены в градусах,
// затем перевод в часы делением на 15.
func EquationOfTime(msd float64) float64 {
	o := orbitAt(msd)
	ls := DegreesToRadians(o.solarLongitude())

	eotDegrees := 2.861*math.Sin(2*ls) -
		0.071*math.Sin(4*ls) +
		0.002*math.Sin(6*ls) -
		o.trueMinusMean()

	return eotDegrees / 15
}

// Season сезон северного полушария по Ls.
func Season(ls float64) string {
	switch ls = normalize(ls, 360); {
	case ls < 90:
		return "northern spring"
	case ls < 180:
		return "northern summer"
	case ls < 270:
		return "northern autumn"
	default:
		return "northern winter"
	}
}

func normalize(value, period float64) float64 {
	value = math.Mod(value, period)
	if value < 0 {
		value += period
	}
	return value
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
