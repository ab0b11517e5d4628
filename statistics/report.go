package statistics

import "fmt"

// Report aggregates the running throughput, block rate and compression
// ratio of a single compress/decompress job.
type Report struct {
	Throughput *RateCounter
	BlockRate  *RateCounter
	Ratio      *Ratio
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{
		Throughput: NewRateCounter("kB/s", 1024),
		BlockRate:  NewRateCounter("blocks/s", 1),
		Ratio:      &Ratio{},
	}
}

// Observe records one job's worth of work: the plain and encoded byte
// totals and the number of blocks it took.
func (r *Report) Observe(plainLen, encodedLen, blocks int) {
	r.Throughput.Add(uint64(plainLen))
	r.Ratio.Add(plainLen, encodedLen)
	r.BlockRate.Add(uint64(blocks))
}

func (r *Report) String() string {
	return fmt.Sprintf("throughput=%s blocks/s=%s ratio=%s", r.Throughput, r.BlockRate, r.Ratio)
}
