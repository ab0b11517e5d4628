package statistics

import "fmt"

// RateCounter tracks a rolling per-second rate of some countable unit
// (bytes, blocks, ...) over a PeriodicStatistic. unit and scale only
// affect String()'s rendering (e.g. bytes/sec rendered as kB/s);
// PerSec/Total always report the raw, unscaled count.
type RateCounter struct {
	unit  string
	scale uint64

	statistic *PeriodicStatistic
}

// NewRateCounter creates a RateCounter whose String() reports its
// per-second rate divided by scale (scale <= 1 means no scaling) and
// suffixed with unit.
func NewRateCounter(unit string, scale uint64) *RateCounter {
	if scale == 0 {
		scale = 1
	}
	return &RateCounter{
		unit:      unit,
		scale:     scale,
		statistic: NewPeriodicStatistic(DefaultStatGridNum, 1),
	}
}

// Add records n units processed.
func (r *RateCounter) Add(n uint64) {
	r.statistic.Stat(int64(n))
}

// PerSec returns the rolling average rate, in raw units.
func (r *RateCounter) PerSec() uint64 {
	return uint64(r.statistic.Avg())
}

// Total returns the total units recorded within the current window.
func (r *RateCounter) Total() uint64 {
	return uint64(r.statistic.Sum())
}

func (r *RateCounter) String() string {
	return fmt.Sprintf("%d %s", r.PerSec()/r.scale, r.unit)
}
