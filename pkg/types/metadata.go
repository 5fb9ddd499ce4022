package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata is an open string-keyed mapping persisted as jsonb. It carries
// provenance for payment records (source, campaign, error text).
type Metadata map[string]string

// Value marshals the map into jsonb.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("metadata: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes jsonb back into the map.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("metadata: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}

// Set assigns key to value, allocating the map when needed, and returns the
// updated map so callers can chain onto a nil receiver.
func (m Metadata) Set(key, value string) Metadata {
	if m == nil {
		m = Metadata{}
	}
	m[key] = value
	return m
}
