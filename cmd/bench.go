package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akiutoslahti/go-salz/salz"
	"github.com/akiutoslahti/go-salz/statistics"
)

var benchCmd = &cobra.Command{
	Use:   "bench [file]",
	Short: "Benchmark factorization across a range of block sizes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(args[0])
	},
}

type benchArgs struct {
	log2Min int
	log2Max int
}

var bench benchArgs

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntVar(&bench.log2Min, "min-block-size", 16, "log2 of the minimum block size, range [10, 31]")
	benchCmd.Flags().IntVar(&bench.log2Max, "max-block-size", 20, "log2 of the maximum block size, range [10, 31]")
}

func runBench(path string) error {
	if bench.log2Min < 10 || bench.log2Min > bench.log2Max || bench.log2Max > 31 {
		return fmt.Errorf("invalid block size range [%d, %d], must be within [10, 31]", bench.log2Min, bench.log2Max)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Println("filename,block size (log2),block size (b),sa time (s),psvnsv time (s)," +
		"factor time (s),parse time (s),emit time (s),lcp mean,phrases (nr),encoded bytes,ratio")

	for log2bs := bench.log2Min; log2bs <= bench.log2Max; log2bs++ {
		blockSize := 1 << uint(log2bs)
		block := data
		if len(block) > blockSize {
			block = block[:blockSize]
		}
		if len(block) < salz.MinInputLen {
			continue
		}

		dst := make([]byte, salz.EncodedLenMax(len(block)))
		var stats salz.Stats
		n, err := salz.Encode(dst, block, nil, &stats)
		if err != nil {
			return err
		}

		ratio := float64(len(block)) / float64(n)
		fmt.Printf("%s,%d,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.3f,%d,%d,%.3f\n",
			path, log2bs, len(block),
			stats.SATime.Seconds(), stats.PSVNSVTime.Seconds(), stats.FactorTime.Seconds(),
			stats.ParseTime.Seconds(), stats.EmitTime.Seconds(),
			stats.LCPMean, stats.FactorCount, n, ratio)
	}

	if proc, err := statistics.CurrentProcStat(); err == nil {
		fmt.Printf("# resident memory: %d bytes\n", proc.ResidentMemory())
	}

	return nil
}
