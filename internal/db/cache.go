package db

import (
	"time"
)

// GetCache returns a cached payload and its write time.
// The payload is stored opaque; compression is the caller's concern.
func (d *DB) GetCache(key string) ([]byte, time.Time, bool) {
	var payload []byte
	var writtenAt int64
	err := d.sql.QueryRow("SELECT payload, written_at FROM cache WHERE key = ?", key).
		Scan(&payload, &writtenAt)
	if err != nil {
		return nil, time.Time{}, false
	}
	return payload, time.Unix(writtenAt, 0), true
}

// SetCache stores a payload under the given key, replacing any previous entry.
func (d *DB) SetCache(key string, payload []byte, writtenAt time.Time) error {
	_, err := d.sql.Exec(
		"INSERT INTO cache (key, payload, written_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, written_at = excluded.written_at",
		key, payload, writtenAt.Unix())
	return err
}

// DeleteCache removes a cache entry. Missing keys are not an error.
func (d *DB) DeleteCache(key string) error {
	_, err := d.sql.Exec("DELETE FROM cache WHERE key = ?", key)
	return err
}
