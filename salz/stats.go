package salz

import "time"

// Stats carries optional per-phase timing for a single Encode call,
// mirroring the reference implementation's build-time-only ENABLE_STATS
// instrumentation. Pass a non-nil *Stats to Encode to have it
// populated; the zero cost of leaving it nil is preserved since every
// call site checks for nil before touching it.
type Stats struct {
	SATime     time.Duration
	PSVNSVTime time.Duration
	FactorTime time.Duration
	ParseTime  time.Duration
	EmitTime   time.Duration

	// LCPMean is the mean longest-common-prefix length between adjacent
	// suffix array entries, the same quantity bench_block.c's
	// compute_lcp_mean reports alongside its per-phase timings.
	LCPMean float64
	// FactorCount is the number of tokens (literals and matches alike)
	// the parse emitted, corresponding to bench_block.c's "phrases (nr)".
	FactorCount int
}

func (s *Stats) trackSA(start time.Time) {
	if s != nil {
		s.SATime += time.Since(start)
	}
}

func (s *Stats) trackPSVNSV(start time.Time) {
	if s != nil {
		s.PSVNSVTime += time.Since(start)
	}
}

func (s *Stats) trackFactor(start time.Time) {
	if s != nil {
		s.FactorTime += time.Since(start)
	}
}

func (s *Stats) trackParse(start time.Time) {
	if s != nil {
		s.ParseTime += time.Since(start)
	}
}

func (s *Stats) trackEmit(start time.Time) {
	if s != nil {
		s.EmitTime += time.Since(start)
	}
}
