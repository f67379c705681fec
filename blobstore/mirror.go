package blobstore

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// MirrorOptions configures a site mirror run.
type MirrorOptions struct {
	// Concurrency bounds the number of blobs copied in parallel. Defaults
	// to 4.
	Concurrency int

	// BytesPerSec caps copy throughput. 0 disables the limiter.
	BytesPerSec int
}

// Mirror copies every blob of a site from src to dst, typically to push a
// local site to remote object storage or to seed a fresh local store.
//
// Blobs are copied concurrently; the first failure cancels the remaining
// copies. Mirror does not delete dst blobs that are absent in src.
func Mirror(ctx context.Context, src, dst BlobStore, site string, version int, optFns ...func(*MirrorOptions)) error {
	opts := MirrorOptions{Concurrency: 4}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	var limiter *rate.Limiter
	if opts.BytesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.BytesPerSec), opts.BytesPerSec)
	}

	names, err := src.List(ctx, site)
	if err != nil {
		return fmt.Errorf("blobstore: mirror %s: %w", site, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, name := range names {
		g.Go(func() error {
			data, err := src.Read(ctx, site, version, name)
			if err != nil {
				return fmt.Errorf("blobstore: mirror %s/%s: %w", site, name, err)
			}
			if limiter != nil {
				if err := waitBytes(ctx, limiter, len(data)); err != nil {
					return err
				}
			}
			if err := dst.Write(ctx, site, version, name, data); err != nil {
				return fmt.Errorf("blobstore: mirror %s/%s: %w", site, name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// waitBytes reserves n bytes from the limiter in burst-sized chunks, since
// a single WaitN may not exceed the limiter's burst.
func waitBytes(ctx context.Context, limiter *rate.Limiter, n int) error {
	burst := limiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
