package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/akiutoslahti/go-salz/job"
)

var decompressCmd = &cobra.Command{
	Use:     "decompress [files...]",
	Aliases: []string{"unsalz"},
	Short:   "Decompress one or more .salz files",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := decompressPath(path); err != nil {
				log.Error().Str("path", path).Err(err).Msg("decompress failed")
				return err
			}
		}
		return nil
	},
}

type decompressArgs struct {
	force  bool
	keep   bool
	stdout bool
}

var dcmp decompressArgs

func init() {
	rootCmd.AddCommand(decompressCmd)

	decompressCmd.Flags().BoolVarP(&dcmp.force, "force", "f", false, "overwrite an existing output file")
	decompressCmd.Flags().BoolVarP(&dcmp.keep, "keep", "k", false, "keep (don't remove) input file")
	decompressCmd.Flags().BoolVarP(&dcmp.stdout, "stdout", "c", false, "write to standard output, keep input file")
}

func decompressPath(path string) error {
	if !strings.HasSuffix(path, salzSuffix) {
		return fmt.Errorf("%q has unknown suffix, expected %q", path, salzSuffix)
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	var out io.Writer
	outPath := strings.TrimSuffix(path, salzSuffix)
	if dcmp.stdout {
		out = os.Stdout
	} else {
		if !dcmp.force {
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

	d := &job.Decompress{In: in, Out: out}
	if err := job.Launch(path, d, duration); err != nil {
		return err
	}

	log.Info().Str("path", path).Msg("decompressed")

	if !dcmp.stdout && !dcmp.keep {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	return nil
}
