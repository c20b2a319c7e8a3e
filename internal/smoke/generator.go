package smoke

import (
	"math/rand/v2"
	"strconv"
)

type city struct {
	name     string
	lon, lat float64
	tz       string
}

var cities = []city{
	{"台北", 121.5654, 25.0330, "Asia/Taipei"},
	{"高雄", 120.3014, 22.6273, "Asia/Taipei"},
	{"東京", 139.6917, 35.6895, "Asia/Tokyo"},
	{"香港", 114.1694, 22.3193, "Asia/Hong_Kong"},
	{"London", -0.1276, 51.5072, "Europe/London"},
	{"New York", -74.0060, 40.7128, "America/New_York"},
	{"Sydney", 151.2093, -33.8688, "Australia/Sydney"},
	{"Reykjavík", -21.9426, 64.1466, "Atlantic/Reykjavik"},
}

// daysIn keeps generated dates valid without consulting a calendar.
var daysIn = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GenerateSubjects returns n subjects drawn from a generator seeded with seed.
// Every third subject omits its timezone so the server default is exercised.
func GenerateSubjects(n int, seed uint64) []Subject {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]Subject, n)
	for i := range out {
		c := cities[rng.IntN(len(cities))]
		month := 1 + rng.IntN(12)
		s := Subject{
			Name:      "冒險者 " + strconv.Itoa(i+1),
			Year:      1950 + rng.IntN(60),
			Month:     month,
			Day:       1 + rng.IntN(daysIn[month]),
			Hour:      rng.IntN(24),
			Minute:    rng.IntN(60),
			City:      c.name,
			Longitude: c.lon,
			Latitude:  c.lat,
			Timezone:  c.tz,
		}
		if i%3 == 2 {
			s.Timezone = ""
		}
		out[i] = s
	}
	return out
}
