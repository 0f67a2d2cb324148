// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package quorum implements the nested threshold structure used by a
// federated consensus node to decide which sets of peers are sufficient
// to reach agreement, along with the safety computations over it.
package quorum

import (
	"slices"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

// Set is one node of a quorum-set tree. A quorum is reached when at least
// [Threshold] of the node's direct children (individual validators plus
// inner sets) agree.
type Set struct {
	Threshold  uint32
	Validators []ids.ID
	InnerSets  []Set
}

// NumChildren returns the number of direct children of s.
func (s *Set) NumChildren() int {
	return len(s.Validators) + len(s.InnerSets)
}

// IsZero returns true if s has no children and no threshold.
func (s *Set) IsZero() bool {
	return s.Threshold == 0 && s.NumChildren() == 0
}

// Equal returns true if s and o describe the same tree, including child
// ordering.
func (s *Set) Equal(o *Set) bool {
	if s.Threshold != o.Threshold ||
		!slices.Equal(s.Validators, o.Validators) ||
		len(s.InnerSets) != len(o.InnerSets) {
		return false
	}
	for i := range s.InnerSets {
		if !s.InnerSets[i].Equal(&o.InnerSets[i]) {
			return false
		}
	}
	return true
}

// AllNodes returns the set of validator identities reachable anywhere in
// the tree.
func (s *Set) AllNodes() set.Set[ids.ID] {
	nodes := set.NewSet[ids.ID](len(s.Validators))
	s.forEachNode(func(id ids.ID) {
		nodes.Add(id)
	})
	return nodes
}

func (s *Set) forEachNode(f func(ids.ID)) {
	for _, id := range s.Validators {
		f(id)
	}
	for i := range s.InnerSets {
		s.InnerSets[i].forEachNode(f)
	}
}
