// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

type nullValue struct{}

func (nullValue) String() string { return "<null>" }

// nullMarker replaces nil user values inside stores. Every copy of it compares
// equal, so it keeps its identity across copies and re-encoding. It is
// unexported so that callers cannot put it themselves.
var nullMarker any = nullValue{}

// IsNull reports whether v is the marker a ValueCache stores in place of nil,
// as returned by ValueCache.Lookup.
func IsNull(v any) bool {
	_, ok := v.(nullValue)
	return ok
}
