package models

import (
	"database/sql/driver"
	"fmt"
)

// JSONField stores an opaque JSON document exactly as received upstream.
// The engine never inspects these values; they round-trip through jsonb
// columns untouched. Empty means SQL NULL.
type JSONField []byte

func (f JSONField) Value() (driver.Value, error) {
	if len(f) == 0 {
		return nil, nil
	}
	return string(f), nil
}

func (f *JSONField) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = nil
	case []byte:
		cp := make([]byte, len(v))
		copy(cp, v)
		*f = cp
	case string:
		*f = JSONField(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONField", src)
	}
	return nil
}
