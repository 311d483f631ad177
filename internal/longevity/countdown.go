package longevity

import "math"

const (
	secondsPerDay   = 24 * 60 * 60
	secondsPerYear  = 365.25 * secondsPerDay
	secondsPerMonth = 30.44 * secondsPerDay
)

// Countdown breaks the remaining lifetime into calendar-ish units.
type Countdown struct {
	Years   int `json:"years"`
	Months  int `json:"months"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`

	TotalSeconds float64 `json:"totalSeconds"`
}

// Remaining computes the time left between age and expectancy (both years).
// Months are taken from the year remainder and days from the month
// remainder, so the units overlap slightly; the figure is a display value.
func Remaining(expectancy, age float64) Countdown {
	yearsLeft := expectancy - age
	if !(yearsLeft > 0) || math.IsInf(yearsLeft, 0) {
		return Countdown{}
	}

	s := yearsLeft * secondsPerYear
	return Countdown{
		Years:        int(math.Floor(s / secondsPerYear)),
		Months:       int(math.Floor(math.Mod(s, secondsPerYear) / secondsPerMonth)),
		Days:         int(math.Floor(math.Mod(s, secondsPerMonth) / secondsPerDay)),
		Hours:        int(math.Floor(math.Mod(s, secondsPerDay) / 3600)),
		Minutes:      int(math.Floor(math.Mod(s, 3600) / 60)),
		Seconds:      int(math.Floor(math.Mod(s, 60))),
		TotalSeconds: s,
	}
}
