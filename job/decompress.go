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
)

// Decompress reads a salzfile stream from In, decodes each segment
// (segments are independent of each other so, like Compress, this
// fans out across host cores) and writes the reassembled plain data
// to Out in original order.
type Decompress struct {
	In     io.Reader
	Out    io.Writer
	Report *statistics.Report
}

// Run implements Runner.
func (d *Decompress) Run(ctx context.Context) error {
	hdr, err := salzfile.ReadHeader(d.In)
	if err != nil {
		return err
	}

	var segments [][]byte
	for {
		seg, err := salzfile.ReadSegment(d.In)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		segments = append(segments, seg)
	}

	plain := make([][]byte, len(segments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			// Every segment's plain length is at most BlockSize
			// (the last, possibly shorter, segment included);
			// Decode treats its destination as a capacity, so
			// sizing every one at BlockSize is always sufficient.
			out := make([]byte, hdr.BlockSize)
			n, err := salz.Decode(out, seg)
			if err != nil {
				return errs.Wrapf(err, "job: decompress segment %d", i)
			}
			plain[i] = out[:n]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total int
	for _, p := range plain {
		if _, err := d.Out.Write(p); err != nil {
			return errs.Wrapf(err, "job: write output")
		}
		total += len(p)
	}
	if d.Report != nil {
		d.Report.Observe(total, segmentsLen(segments), len(segments))
	}

	return nil
}

func segmentsLen(segments [][]byte) int {
	var n int
	for _, s := range segments {
		n += len(s)
	}
	return n
}
