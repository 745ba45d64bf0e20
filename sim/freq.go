package sim

import (
	"errors"
	"log"
	"math"
	"time"
)

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// ErrZeroFrequency is returned when a frequency or a period of zero is used
// to derive timing.
var ErrZeroFrequency = errors.New("sim: frequency must be positive")

// VTimeInSec defines the time in the simulated space in the unit of second
type VTimeInSec float64

// VTimeInCycle counts the cycles the engine has stepped since it was created.
type VTimeInCycle uint64

// FreqFromPeriod returns the frequency whose period is p.
func FreqFromPeriod(p time.Duration) (Freq, error) {
	if p <= 0 {
		return 0, ErrZeroFrequency
	}

	return Freq(float64(time.Second) / float64(p)), nil
}

// Period returns the time between two consecutive ticks
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}
	return VTimeInSec(1.0 / f)
}

// PeriodDuration returns the period rounded to the nearest nanosecond.
func (f Freq) PeriodDuration() time.Duration {
	return time.Duration(math.Round(float64(f.Period()) * float64(time.Second)))
}

// Time converts a cycle count into the time passed since cycle 0.
func (f Freq) Time(cycle VTimeInCycle) VTimeInSec {
	return VTimeInSec(float64(cycle)) * f.Period()
}

// Cycle converts a time to the number of cycles passed since time 0.
func (f Freq) Cycle(time VTimeInSec) uint64 {
	return uint64(math.Round(float64(time) * float64(f)))
}

// CyclesNoLessThan returns the smallest number of cycles of the given period
// that cover at least d.
//
//	d = 50ns, period = 10ns -> 5
//	d = 20ns, period = 15ns -> 2
func CyclesNoLessThan(d, period time.Duration) (int, error) {
	if period <= 0 {
		return 0, ErrZeroFrequency
	}

	if d <= 0 {
		return 0, nil
	}

	return int((d + period - 1) / period), nil
}

// CyclesNoLessThan returns the smallest number of cycles of f that cover at
// least d.
func (f Freq) CyclesNoLessThan(d time.Duration) (int, error) {
	if f <= 0 {
		return 0, ErrZeroFrequency
	}

	return CyclesNoLessThan(d, f.PeriodDuration())
}
