// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all L.U.M.A entities.
// Each store struct wraps a *sql.DB and exposes typed query methods. Rows
// are keyed by ids generated in the catalog, never by the database, so
// inserts always carry an explicit id.
package store

import (
	"encoding/json"
	"fmt"
)

// jsonb marshals v for a JSONB column.
func jsonb(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return b, nil
}

// fromJSONB unmarshals a JSONB column into dst. A NULL column (nil bytes)
// leaves dst untouched.
func fromJSONB(b []byte, dst any) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("unmarshal jsonb: %w", err)
	}
	return nil
}
