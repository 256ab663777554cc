package release

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a release record from a JSON file. A missing or malformed file
// is an error; absent sequences decode as empty.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading release record: %w", err)
	}
	return Parse(data)
}

// Parse decodes a release record from JSON.
func Parse(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing release record: %w", err)
	}
	return rec, nil
}

// Encode returns the record as indented JSON with a trailing newline.
func Encode(rec Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding release record: %w", err)
	}
	return append(data, '\n'), nil
}
