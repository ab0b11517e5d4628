package job

import (
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/akiutoslahti/go-salz/common/errs"
	"github.com/akiutoslahti/go-salz/salz"
	"github.com/akiutoslahti/go-salz/salzfile"
	"github.com/akiutoslahti/go-salz/statistics"
	"github.com/akiutoslahti/go-salz/suffixarray"
)

// Compress reads plain data from In, splits it into BlockSize chunks,
// salz-encodes each independently (blocks share no state, so this
// fans out across host cores) and frames the results into Out as a
// salzfile stream.
type Compress struct {
	In        io.Reader
	Out       io.Writer
	BlockSize uint32
	Builder   suffixarray.Builder
	Report    *statistics.Report
}

// Run implements Runner.
func (c *Compress) Run(ctx context.Context) error {
	if err := salzfile.WriteHeader(c.Out, salzfile.Header{BlockSize: c.BlockSize}); err != nil {
		return err
	}

	blocks, err := readBlocks(c.In, int(c.BlockSize))
	if err != nil {
		return err
	}

	encoded := make([][]byte, len(blocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, block := range blocks {
		i, block := i, block
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			dst := make([]byte, salz.EncodedLenMax(len(block)))
			n, err := salz.Encode(dst, block, c.Builder, nil)
			if err != nil {
				return errs.Wrapf(err, "job: compress block %d", i)
			}
			encoded[i] = dst[:n]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var plainTotal, encodedTotal int
	for i, block := range blocks {
		if err := salzfile.WriteSegment(c.Out, encoded[i]); err != nil {
			return err
		}
		plainTotal += len(block)
		encodedTotal += len(encoded[i])
	}
	if c.Report != nil {
		c.Report.Observe(plainTotal, encodedTotal, len(blocks))
	}

	return nil
}

// readBlocks reads r to completion, splitting it into chunks of at
// most blockSize bytes. The final chunk may be shorter.
func readBlocks(r io.Reader, blockSize int) ([][]byte, error) {
	var blocks [][]byte
	for {
		buf := make([]byte, blockSize)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			blocks = append(blocks, buf[:n])
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return blocks, nil
		}
		if err != nil {
			return nil, errs.Wrapf(err, "job: read input")
		}
	}
}
