package framelog

// Purpose:	Compress a rotated-out daily CSV log into a long-term
//		archive, grounded on the rest of the retrieval pack's
//		madpsy-ka9q_ubersdr client stack (pcm_binary.go uses
//		github.com/klauspost/compress/zstd to shrink streamed
//		capture data before it crosses the wire; we reuse the
//		same library here to shrink a capture log at rest once
//		the day it belongs to has closed).

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// ArchiveAndRemove compresses path to path+".zst" and removes the
// original. Intended to run once per day, after framelog.Log has
// rotated off the file (i.e. it is no longer the currently-open file),
// the same "previous day's log is now closed and safe to touch"
// invariant the teacher's log_term documents for its own rotation.
func ArchiveAndRemove(path string) (archivePath string, err error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("framelog: open %q for archival: %w", path, err)
	}
	defer in.Close()

	archivePath = path + ".zst"
	out, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("framelog: create archive %q: %w", archivePath, err)
	}

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		out.Close()
		return "", fmt.Errorf("framelog: new zstd writer: %w", err)
	}

	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		out.Close()
		return "", fmt.Errorf("framelog: compress %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		out.Close()
		return "", fmt.Errorf("framelog: finalize zstd stream: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("framelog: close archive %q: %w", archivePath, err)
	}

	if err := os.Remove(path); err != nil {
		return archivePath, fmt.Errorf("framelog: remove original %q after archival: %w", path, err)
	}
	return archivePath, nil
}
