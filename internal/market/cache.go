package market

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// CacheStore is the persistent key/value store the engine writes compressed
// snapshots to. Implemented by internal/db; tests use an in-memory fake.
type CacheStore interface {
	GetCache(key string) (payload []byte, writtenAt time.Time, ok bool)
	SetCache(key string, payload []byte, writtenAt time.Time) error
}

// encodeSnapshot serializes v to gzip-compressed JSON.
func encodeSnapshot(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(v); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeSnapshot deserializes gzip-compressed JSON into v.
func decodeSnapshot(payload []byte, v interface{}) error {
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("decompress snapshot: %w", err)
	}
	defer zr.Close()
	if err := json.NewDecoder(zr).Decode(v); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	// Require a clean gzip trailer so truncated payloads fail loudly.
	if _, err := io.Copy(io.Discard, zr); err != nil {
		return fmt.Errorf("decompress snapshot: %w", err)
	}
	return nil
}
