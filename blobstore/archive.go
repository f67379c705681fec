package blobstore

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/zstd"
)

// WriteArchive streams every blob of a site into a zstd-compressed tar
// written to w. Entry order is deterministic (sorted inner paths) so equal
// sites produce equal archives.
func WriteArchive(ctx context.Context, store BlobStore, site string, version int, w io.Writer) error {
	names, err := store.List(ctx, site)
	if err != nil {
		return fmt.Errorf("blobstore: archive %s: %w", site, err)
	}
	sort.Strings(names)

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("blobstore: create compressor: %w", err)
	}
	tw := tar.NewWriter(zw)

	for _, name := range names {
		data, err := store.Read(ctx, site, version, name)
		if err != nil {
			return fmt.Errorf("blobstore: archive %s/%s: %w", site, name, err)
		}
		hdr := &tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(data)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("blobstore: archive %s/%s: %w", site, name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("blobstore: archive %s/%s: %w", site, name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("blobstore: finish archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("blobstore: finish archive: %w", err)
	}
	return nil
}

// ReadArchive restores a site archive produced by WriteArchive into store.
// Existing blobs with the same inner paths are overwritten.
func ReadArchive(ctx context.Context, store BlobStore, site string, version int, r io.Reader) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("blobstore: open archive: %w", err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("blobstore: read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return fmt.Errorf("blobstore: read archive entry %s: %w", hdr.Name, err)
		}
		if err := store.Write(ctx, site, version, hdr.Name, data); err != nil {
			return err
		}
	}
}
