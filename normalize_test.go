// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"

	"github.com/luxfi/quorum"
)

func TestNormalizeMergesSingletonLeaves(t *testing.T) {
	require := require.New(t)

	a := ids.GenerateTestID()
	b := ids.GenerateTestID()
	c := ids.GenerateTestID()

	s := quorum.Set{
		Threshold:  2,
		Validators: []ids.ID{a},
		InnerSets: []quorum.Set{
			{Threshold: 1, Validators: []ids.ID{b}},
			{Threshold: 2, Validators: []ids.ID{c, ids.GenerateTestID()}},
		},
	}

	got := quorum.Normalize(s)
	require.Equal(uint32(2), got.Threshold)
	require.Equal([]ids.ID{a, b}, got.Validators)
	require.Len(got.InnerSets, 1)
}

func TestNormalizeCollapsesSingletonRoot(t *testing.T) {
	require := require.New(t)

	inner := quorum.Set{
		Threshold: 2,
		Validators: []ids.ID{
			ids.GenerateTestID(),
			ids.GenerateTestID(),
			ids.GenerateTestID(),
		},
	}
	root := quorum.Set{
		Threshold: 1,
		InnerSets: []quorum.Set{inner},
	}

	got := quorum.Normalize(root)
	require.True(got.Equal(&inner))
}

func TestNormalizeIdempotent(t *testing.T) {
	require := require.New(t)

	trees := []quorum.Set{
		{},
		{Threshold: 1, Validators: []ids.ID{ids.GenerateTestID()}},
		{Threshold: 1, InnerSets: []quorum.Set{
			{Threshold: 1, InnerSets: []quorum.Set{
				{Threshold: 1, Validators: []ids.ID{ids.GenerateTestID()}},
			}},
		}},
		{Threshold: 2, Validators: []ids.ID{ids.GenerateTestID()}, InnerSets: []quorum.Set{
			{Threshold: 1, Validators: []ids.ID{ids.GenerateTestID()}},
			{Threshold: 2, Validators: []ids.ID{ids.GenerateTestID(), ids.GenerateTestID(), ids.GenerateTestID()}},
		}},
	}
	for _, tree := range trees {
		once := quorum.Normalize(tree)
		twice := quorum.Normalize(once)
		require.True(twice.Equal(&once))
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	require := require.New(t)

	in := quorum.Set{
		Threshold: 1,
		InnerSets: []quorum.Set{
			{Threshold: 1, Validators: []ids.ID{ids.GenerateTestID()}},
		},
	}
	want := quorum.Set{
		Threshold: in.Threshold,
		InnerSets: []quorum.Set{
			{Threshold: 1, Validators: []ids.ID{in.InnerSets[0].Validators[0]}},
		},
	}

	_ = quorum.Normalize(in)
	require.True(in.Equal(&want))
}
