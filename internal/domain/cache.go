package domain

import (
	"context"
	"io"
)

// ScanCache holds the most recent scan result so read paths do not trigger a
// fresh scan.
type ScanCache interface {
	SetLatest(ctx context.Context, res ScanResult) error
	GetLatest(ctx context.Context) (ScanResult, error)
}

// SignalBus provides pub/sub fan-out of scan and arbitrage events to
// downstream consumers.
type SignalBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// BlobWriter uploads objects to blob storage.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}
