// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"encoding/json"

	"github.com/luxfi/ids"
)

// Render returns a human-readable JSON form of the tree, with [name]
// substituting a display string for each raw identity. The output is
// deterministic for a given tree and is safe to compare for equality.
func Render(s *Set, name func(ids.ID) string) string {
	b, err := json.MarshalIndent(renderValue(s, name), "", "  ")
	if err != nil {
		// the value is built from strings and ints only
		panic(err)
	}
	return string(b)
}

func renderValue(s *Set, name func(ids.ID) string) map[string]any {
	children := make([]any, 0, s.NumChildren())
	for _, id := range s.Validators {
		children = append(children, name(id))
	}
	for i := range s.InnerSets {
		children = append(children, renderValue(&s.InnerSets[i], name))
	}
	return map[string]any{
		"t": s.Threshold,
		"v": children,
	}
}
