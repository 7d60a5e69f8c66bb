package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// loadJSON reads record name and decodes it into v.
func loadJSON(ctx context.Context, records RecordRepo, name string, v any) error {
	data, err := records.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decoding %s record: %v", ErrCorruptRecord, name, err)
	}
	return nil
}

// saveJSON encodes v and writes it as record name.
func saveJSON(ctx context.Context, records RecordRepo, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", name, err)
	}
	return records.Put(ctx, name, data)
}
