package cmd

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/akiutoslahti/go-salz/salzfile"
)

var infoCmd = &cobra.Command{
	Use:     "info [files...]",
	Aliases: []string{"list"},
	Short:   "Print information about one or more .salz files",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := printInfo(path); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// segmentHeaderLen is the size of a segment's own type/length header.
const segmentHeaderLen = 4

// segmentInfo describes one segment's stats within a salz file.
type segmentInfo struct {
	Index       int  `json:"index"`
	EncodedLen  int  `json:"encoded_bytes"`
	IsPlain     bool `json:"plain"`
	StreamValid bool `json:"valid_header"`
}

// fileInfo is the JSON-serializable summary printed by info.
type fileInfo struct {
	Path         string        `json:"path"`
	BlockSize    uint32        `json:"block_size"`
	Segments     []segmentInfo `json:"segments"`
	EncodedTotal int           `json:"encoded_total_bytes"`
}

func printInfo(path string) error {
	if !strings.HasSuffix(path, salzSuffix) {
		return fmt.Errorf("%q has unknown suffix, expected %q", path, salzSuffix)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hdr, err := salzfile.ReadHeader(f)
	if err != nil {
		return err
	}

	info := fileInfo{Path: path, BlockSize: hdr.BlockSize}
	for i := 0; ; i++ {
		seg, err := salzfile.ReadSegment(f)
		if err != nil {
			break
		}
		valid := len(seg) >= segmentHeaderLen
		var isPlain bool
		if valid {
			isPlain = binary.LittleEndian.Uint32(seg[:segmentHeaderLen])>>24 == 0
		}
		info.Segments = append(info.Segments, segmentInfo{
			Index:       i,
			EncodedLen:  len(seg),
			IsPlain:     isPlain,
			StreamValid: valid,
		})
		info.EncodedTotal += len(seg)
	}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
