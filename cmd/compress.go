package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/akiutoslahti/go-salz/job"
	"github.com/akiutoslahti/go-salz/statistics"
)

const salzSuffix = ".salz"

var compressCmd = &cobra.Command{
	Use:   "compress [files...]",
	Short: "Compress one or more files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := compressPath(path); err != nil {
				log.Error().Str("path", path).Err(err).Msg("compress failed")
				return err
			}
		}
		return nil
	},
}

type compressArgs struct {
	level  int
	force  bool
	keep   bool
	stdout bool
}

var cmp compressArgs

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().IntVarP(&cmp.level, "level", "", 5, "compression level 0-9, block size grows as 2^(15+level)")
	compressCmd.Flags().BoolVarP(&cmp.force, "force", "f", false, "overwrite an existing output file")
	compressCmd.Flags().BoolVarP(&cmp.keep, "keep", "k", false, "keep (don't remove) input file")
	compressCmd.Flags().BoolVarP(&cmp.stdout, "stdout", "c", false, "write to standard output, keep input file")
}

func blockSizeForLevel(level int) uint32 {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	return 1 << uint(15+level)
}

func compressPath(path string) error {
	if strings.HasSuffix(path, salzSuffix) {
		return fmt.Errorf("%q already has %q suffix", path, salzSuffix)
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	var out io.Writer
	outPath := path + salzSuffix
	if cmp.stdout {
		out = os.Stdout
	} else {
		if !cmp.force {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%q already exists", outPath)
			}
		}
		f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	report := statistics.NewReport()
	c := &job.Compress{
		In:        in,
		Out:       out,
		BlockSize: blockSizeForLevel(cmp.level),
		Report:    report,
	}
	if err := job.Launch(path, c, duration); err != nil {
		return err
	}

	log.Info().Str("path", path).
		Uint64("plain_bytes", report.Ratio.Plain()).
		Uint64("encoded_bytes", report.Ratio.Encoded()).
		Float64("ratio", report.Ratio.Value()).
		Msg("compressed")

	if !cmp.stdout && !cmp.keep {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	return nil
}
