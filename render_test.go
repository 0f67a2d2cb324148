// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"

	"github.com/luxfi/quorum"
)

func TestRender(t *testing.T) {
	require := require.New(t)

	a := ids.GenerateTestID()
	b := ids.GenerateTestID()
	s := quorum.Set{
		Threshold:  2,
		Validators: []ids.ID{a},
		InnerSets: []quorum.Set{
			{Threshold: 1, Validators: []ids.ID{b}},
		},
	}

	names := map[ids.ID]string{a: "alice"}
	display := func(id ids.ID) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id.String()[:5]
	}

	rendered := quorum.Render(&s, display)
	require.Contains(rendered, `"alice"`)
	require.Contains(rendered, b.String()[:5])
	require.NoError(json.Unmarshal([]byte(rendered), new(map[string]any)))

	// deterministic for the same tree
	require.Equal(rendered, quorum.Render(&s, display))
}
