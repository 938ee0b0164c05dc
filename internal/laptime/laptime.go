// Package laptime parses and formats lap durations written as minutes'seconds.millis.
package laptime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Duration is a lap time. It is built from integer minutes, seconds and
// milliseconds so sums over a race do not drift.
type Duration time.Duration

// New builds a Duration from its parts.
func New(minutes, seconds, millis int) Duration {
	return Duration(time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond)
}

// FromSeconds rounds s to the nearest millisecond.
func FromSeconds(s float64) Duration {
	return Duration(time.Duration(math.Round(s*1000)) * time.Millisecond)
}

// Parse reads a lap time token such as "2'03.958" (123.958s).
// The fraction may carry 1 to 3 digits; the seconds part must be below 60.
func Parse(s string) (Duration, error) {
	mins, secs, ok := strings.Cut(strings.TrimSpace(s), "'")
	if !ok {
		return 0, fmt.Errorf("lap time %q: missing minutes separator", s)
	}
	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 {
		return 0, fmt.Errorf("lap time %q: bad minutes", s)
	}

	whole, frac, _ := strings.Cut(secs, ".")
	sec, err := strconv.Atoi(whole)
	if err != nil || sec < 0 || sec >= 60 {
		return 0, fmt.Errorf("lap time %q: seconds must be in [0, 60)", s)
	}

	ms := 0
	if frac != "" {
		if len(frac) > 3 {
			return 0, fmt.Errorf("lap time %q: more than millisecond precision", s)
		}
		ms, err = strconv.Atoi(frac + strings.Repeat("0", 3-len(frac)))
		if err != nil || ms < 0 {
			return 0, fmt.Errorf("lap time %q: bad milliseconds", s)
		}
	}
	return New(m, sec, ms), nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Seconds returns the duration as floating seconds, for plotting.
func (d Duration) Seconds() float64 {
	return time.Duration(d).Seconds()
}

// String renders the chart label form: minutes floor-divided, seconds as
// the remainder without zero padding ("2'3.958").
func (d Duration) String() string {
	ms := time.Duration(d).Milliseconds()
	return fmt.Sprintf("%d'%d.%03d", ms/60000, (ms%60000)/1000, ms%1000)
}

// Padded renders the timing-sheet form with two second digits ("2'03.958").
func (d Duration) Padded() string {
	ms := time.Duration(d).Milliseconds()
	return fmt.Sprintf("%d'%02d.%03d", ms/60000, (ms%60000)/1000, ms%1000)
}

// FormatSeconds renders a raw seconds value the way the y axis shows it.
// It is the inverse of Parse for millisecond aligned values.
func FormatSeconds(s float64) string {
	if s < 0 {
		return "-" + FromSeconds(-s).String()
	}
	return FromSeconds(s).String()
}

// Best returns the smallest duration in laps and false when laps is empty.
func Best(laps []Duration) (Duration, bool) {
	if len(laps) == 0 {
		return 0, false
	}
	best := laps[0]
	for _, l := range laps[1:] {
		if l < best {
			best = l
		}
	}
	return best, true
}

// Sum adds laps exactly.
func Sum(laps []Duration) Duration {
	var total Duration
	for _, l := range laps {
		total += l
	}
	return total
}
