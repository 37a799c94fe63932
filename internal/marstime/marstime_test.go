package marstime

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

var hmsPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

var reference = time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
	}{
		{
			name:     "J2000.0 epoch",
			time:     time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 2451545.0,
		},
		{
			name:     "Unix epoch",
			time:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2440587.5,
		},
		{
			name:     "milliseconds",
			time:     time.Date(2004, 4, 6, 7, 51, 28, 386000000, time.UTC),
			expected: 2453101.827411875,
		},
		{
			// наносекунды ниже миллисекунды отбрасываются
			name:     "sub-millisecond truncated",
			time:     time.Date(2004, 4, 6, 7, 51, 28, 386999999, time.UTC),
			expected: 2453101.827411875,
		},
		{
			name:     "non-UTC location",
			time:     time.Date(2000, 1, 1, 15, 0, 0, 0, time.FixedZone("MSK", 3*3600)),
			expected: 2451545.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.time)
			if diff := math.Abs(got - tt.expected); diff > 1e-8 {
				t.Errorf("JulianDate(%v) = %.10f, want %.10f (diff=%.2e)", tt.time, got, tt.expected, diff)
			}
		})
	}
}

// TestJulianDateMeeus сверяет результат с пакетом julian из meeus.
func TestJulianDateMeeus(t *testing.T) {
	times := []time.Time{
		time.Date(1582, 10, 15, 0, 0, 0, 0, time.UTC),
		time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC),
		time.Date(2012, 8, 6, 5, 17, 57, 0, time.UTC),
		time.Date(2021, 2, 18, 20, 55, 0, 0, time.UTC),
		time.Date(2100, 3, 1, 6, 30, 0, 0, time.UTC),
	}

	for _, tm := range times {
		t.Run(tm.Format(time.RFC3339), func(t *testing.T) {
			our := JulianDate(tm)
			ref := julian.TimeToJD(tm)
			if diff := math.Abs(our - ref); diff > 1e-6 {
				t.Errorf("JulianDate = %.8f, meeus = %.8f (diff=%.2e)", our, ref, diff)
			}
		})
	}
}

func TestEarthToMSD(t *testing.T) {
	got := EarthToMSD(reference)
	if diff := math.Abs(got - 53144.002947279594); diff > 1e-6 {
		t.Errorf("EarthToMSD(%v) = %.9f, want 53144.002947", reference, got)
	}

	// 2000-01-06 00:00 UTC по определению MSD = 44796.0
	epoch := time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := EarthToMSD(epoch); math.Abs(got-MSDEpochOffset) > 1e-9 {
		t.Errorf("EarthToMSD(%v) = %.9f, want %.1f", epoch, got, MSDEpochOffset)
	}
}

func TestEarthToMSDDayRatio(t *testing.T) {
	diff := EarthToMSD(reference.Add(24*time.Hour)) - EarthToMSD(reference)
	want := 1 / EarthToMarsDayRatio

	if math.Abs(diff-want) > 1e-6 {
		t.Errorf("one Earth day = %.6f sols, want %.6f", diff, want)
	}
	if math.Abs(diff-1.0) < 0.02 {
		t.Errorf("one Earth day = %.6f sols, must not be 1:1", diff)
	}
}

func TestEarthToMSDMonotonic(t *testing.T) {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := EarthToMSD(start)
	for i := 1; i <= 2000; i++ {
		tm := start.Add(time.Duration(i) * 97 * time.Hour)
		msd := EarthToMSD(tm)
		if msd <= prev {
			t.Fatalf("EarthToMSD not increasing at %v: %.9f <= %.9f", tm, msd, prev)
		}
		prev = msd
	}

	a := EarthToMSD(reference)
	b := EarthToMSD(reference.Add(time.Second))
	if b <= a {
		t.Errorf("EarthToMSD not increasing over one second: %.12f <= %.12f", b, a)
	}
}

func TestMTC(t *testing.T) {
	if got := MTC(reference); got != "00:04:15" {
		t.Errorf("MTC(%v) = %q, want %q", reference, got, "00:04:15")
	}

	epoch := time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := MTC(epoch); got != "00:00:00" {
		t.Errorf("MTC(%v) = %q, want %q", epoch, got, "00:00:00")
	}
}

func TestLTST(t *testing.T) {
	tests := []struct {
		name      string
		longitude float64
		want      string
	}{
		{"curiosity", Curiosity.Longitude, "09:04:49"},
		{"perseverance", Perseverance.Longitude, "05:04:52"},
		{"east 45", 45, "02:55:03"},
		{"west 45", -45, "20:55:03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LTST(reference, tt.longitude); got != tt.want {
				t.Errorf("LTST(%v, %v) = %q, want %q", reference, tt.longitude, got, tt.want)
			}
		})
	}

	if LTST(reference, -45) == LTST(reference, 45) {
		t.Error("LTST must differ for opposite longitudes")
	}
}

func TestTimeStringsFormat(t *testing.T) {
	start := time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)
	longitudes := []float64{-180, -45, 0, 45, 77.4509, 137.4417, 180, 359.9}

	for i := 0; i < 500; i++ {
		tm := start.Add(time.Duration(i) * 3331 * time.Hour)
		values := []string{MTC(tm)}
		for _, lon := range longitudes {
			values = append(values, LTST(tm, lon))
		}

		for _, v := range values {
			if !hmsPattern.MatchString(v) {
				t.Fatalf("%v: %q does not match HH:MM:SS", tm, v)
			}
			if v[:2] >= "24" {
				t.Fatalf("%v: hour out of range in %q", tm, v)
			}
		}
	}
}

func TestMissionSol(t *testing.T) {
	for _, rover := range Rovers() {
		t.Run(rover.Slug, func(t *testing.T) {
			if sol := MissionSol(rover.Landing, rover.Landing); sol != 0 {
				t.Errorf("sol at landing = %d, want 0", sol)
			}

			prev := 0
			for h := 0; h < 24*800; h += 7 {
				sol := MissionSol(rover.Landing, rover.Landing.Add(time.Duration(h)*time.Hour))
				if sol < prev {
					t.Fatalf("sol decreased at +%dh: %d < %d", h, sol, prev)
				}
				if sol < 0 {
					t.Fatalf("negative sol at +%dh: %d", h, sol)
				}
				prev = sol
			}
		})
	}

	// первый сол заканчивается через SolSeconds после посадки
	landing := Curiosity.Landing
	sol := SolSeconds
	before := landing.Add(time.Duration((sol - 60) * float64(time.Second)))
	after := landing.Add(time.Duration((sol + 60) * float64(time.Second)))
	if got := MissionSol(landing, before); got != 0 {
		t.Errorf("sol just before one sol elapsed = %d, want 0", got)
	}
	if got := MissionSol(landing, after); got != 1 {
		t.Errorf("sol just after one sol elapsed = %d, want 1", got)
	}
}

func TestDecimalTimeToHMS(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "00:00:00"},
		{12, "12:00:00"},
		{23.999722, "23:59:59"},
		{1.5, "01:30:00"},
		{13.75, "13:45:00"},
		{9.999999, "10:00:00"},
		{23.99999, "00:00:00"},
		{25, "01:00:00"},
		{-1.5, "22:30:00"},
	}

	for _, tt := range tests {
		if got := DecimalTimeToHMS(tt.hours); got != tt.want {
			t.Errorf("DecimalTimeToHMS(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestDecimalTimeToHMSNonFinite(t *testing.T) {
	for _, hours := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), math.MaxFloat64} {
		if got := DecimalTimeToHMS(hours); got != "00:00:00" {
			t.Errorf("DecimalTimeToHMS(%v) = %q, want 00:00:00", hours, got)
		}
	}

	for _, hours := range []float64{1e300, -1e300, 1e18, -1e18} {
		got := DecimalTimeToHMS(hours)
		if !hmsPattern.MatchString(got) || got[:2] >= "24" {
			t.Errorf("DecimalTimeToHMS(%v) = %q, out of range", hours, got)
		}
	}
}

func TestAngleRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 45, 90, 180, 248, 359.999, -720, 1e6, 1e-9}
	for _, v := range values {
		got := RadiansToDegrees(DegreesToRadians(v))
		tol := 1e-10 * math.Max(1, math.Abs(v))
		if math.Abs(got-v) > tol {
			t.Errorf("round trip %v -> %v", v, got)
		}
	}

	if got := DegreesToRadians(180); math.Abs(got-math.Pi) > 1e-15 {
		t.Errorf("DegreesToRadians(180) = %v", got)
	}
}

func TestSolarLongitude(t *testing.T) {
	msd := EarthToMSD(reference)
	if got := SolarLongitude(msd); math.Abs(got-45.04054) > 1e-4 {
		t.Errorf("SolarLongitude(%.3f) = %.5f, want 45.04054", msd, got)
	}

	for m := -50000.0; m < 150000; m += 123.7 {
		ls := SolarLongitude(m)
		if ls < 0 || ls >= 360 {
			t.Fatalf("SolarLongitude(%v) = %v out of [0, 360)", m, ls)
		}
	}
}

func TestEquationOfTime(t *testing.T) {
	tests := []struct {
		msd  float64
		want float64
	}{
		{0, -0.29651411},
		{53000, -0.84295346},
		{60000, -0.22946205},
	}
	for _, tt := range tests {
		if got := EquationOfTime(tt.msd); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("EquationOfTime(%v) = %.8f, want %.8f", tt.msd, got, tt.want)
		}
	}

	for m := -50000.0; m < 150000; m += 17.3 {
		if eot := EquationOfTime(m); math.Abs(eot) >= 6 {
			t.Fatalf("EquationOfTime(%v) = %v, magnitude too large", m, eot)
		}
	}

	for _, m := range []float64{0, 44796, 49269.5, 52000, 53000, 60000} {
		a, b := EquationOfTime(m), EquationOfTime(m+334)
		if math.Abs(a-b) <= 0.01 {
			t.Errorf("EquationOfTime(%v)=%.4f and +334 sols=%.4f barely differ", m, a, b)
		}
	}
}

func TestSeason(t *testing.T) {
	tests := []struct {
		ls   float64
		want string
	}{
		{0, "northern spring"},
		{89.9, "northern spring"},
		{90, "northern summer"},
		{200, "northern autumn"},
		{300, "northern winter"},
		{-10, "northern winter"},
	}
	for _, tt := range tests {
		if got := Season(tt.ls); got != tt.want {
			t.Errorf("Season(%v) = %q, want %q", tt.ls, got, tt.want)
		}
	}
}

func TestRoverBySlug(t *testing.T) {
	r, ok := RoverBySlug("Perseverance")
	if !ok || r.Name != "Perseverance" {
		t.Fatalf("RoverBySlug(Perseverance) = %+v, %v", r, ok)
	}
	if _, ok := RoverBySlug("opportunity"); ok {
		t.Error("unexpected rover opportunity")
	}
}

func TestRoverClock(t *testing.T) {
	rt := RoverClock(reference, Curiosity)
	if rt.Sol != 3874 {
		t.Errorf("Sol = %d, want 3874", rt.Sol)
	}
	if rt.LTST != "09:04:49" {
		t.Errorf("LTST = %q, want 09:04:49", rt.LTST)
	}
	if !hmsPattern.MatchString(rt.LMST) {
		t.Errorf("LMST = %q", rt.LMST)
	}
}

func TestMSDToEarth(t *testing.T) {
	for _, tm := range []time.Time{
		reference,
		Curiosity.Landing,
		time.Date(1999, 12, 31, 23, 59, 59, 250000000, time.UTC),
	} {
		got := MSDToEarth(EarthToMSD(tm))
		if d := got.Sub(tm); d < -time.Millisecond || d > time.Millisecond {
			t.Errorf("MSDToEarth(EarthToMSD(%v)) = %v (diff %v)", tm, got, d)
		}
	}
}

func TestSolStart(t *testing.T) {
	for _, sol := range []int{0, 1, 100, 3874} {
		start := Curiosity.SolStart(sol)
		if got := Curiosity.Sol(start.Add(time.Minute)); got != sol {
			t.Errorf("Sol(SolStart(%d)+1m) = %d", sol, got)
		}
		if got := Curiosity.Sol(start.Add(-time.Minute)); got != sol-1 {
			t.Errorf("Sol(SolStart(%d)-1m) = %d, want %d", sol, got, sol-1)
		}
	}
}
