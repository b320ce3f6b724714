package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jrgordon/spreadscan/internal/domain"
)

// Archiver uploads full scan snapshots to object storage, one JSON object per
// scan, partitioned by scan date:
//
//	scans/2026/08/29/scan-<id>.json
//
// Snapshots are the long-term record; the Postgres history only keeps the
// flagged opportunities, not the whole unified list.
type Archiver struct {
	writer domain.BlobWriter
}

// NewArchiver creates an Archiver that uploads snapshots through the given
// writer.
func NewArchiver(w domain.BlobWriter) *Archiver {
	return &Archiver{writer: w}
}

// ArchiveScan serializes the scan result and uploads it. The S3 key is
// derived from the scan's own timestamp so re-uploading an old scan lands in
// its original partition.
func (a *Archiver) ArchiveScan(ctx context.Context, res domain.ScanResult) (string, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("s3blob: marshal scan %s: %w", res.ID, err)
	}

	key := scanPath(res)
	if err := a.writer.Put(ctx, key, bytes.NewReader(payload), "application/json"); err != nil {
		return "", fmt.Errorf("s3blob: archive scan %s: %w", res.ID, err)
	}
	return key, nil
}

func scanPath(res domain.ScanResult) string {
	return fmt.Sprintf("scans/%s/scan-%s.json", res.ScannedAt.UTC().Format("2006/01/02"), res.ID)
}
