// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"slices"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

// IsVBlocking returns true if the simultaneous failure of [failed] leaves
// s unable to reach its threshold at any level.
func IsVBlocking(s *Set, failed []ids.ID) bool {
	failedSet := set.NewSet[ids.ID](len(failed))
	for _, id := range failed {
		failedSet.Add(id)
	}
	return isVBlocking(s, failedSet)
}

func isVBlocking(s *Set, failed set.Set[ids.ID]) bool {
	if s.Threshold == 0 {
		// can't block an empty node
		return false
	}

	leftTillBlock := 1 + s.NumChildren() - int(s.Threshold)
	for _, id := range s.Validators {
		if failed.Contains(id) {
			leftTillBlock--
			if leftTillBlock <= 0 {
				return true
			}
		}
	}
	for i := range s.InnerSets {
		if isVBlocking(&s.InnerSets[i], failed) {
			leftTillBlock--
			if leftTillBlock <= 0 {
				return true
			}
		}
	}
	return false
}

// FindClosestVBlocking returns a minimal subset of [nodes] whose failure
// makes every threshold in s unreachable. An empty result means s is
// already blocked without failing any of [nodes].
func FindClosestVBlocking(s *Set, nodes set.Set[ids.ID]) []ids.ID {
	leftTillBlock := 1 + s.NumChildren() - int(s.Threshold)

	var res []ids.ID
	for _, id := range s.Validators {
		if !nodes.Contains(id) {
			// already missing, blocks for free
			leftTillBlock--
			if leftTillBlock == 0 {
				return nil
			}
			continue
		}
		res = append(res, id)
	}

	var innerResults [][]ids.ID
	for i := range s.InnerSets {
		v := FindClosestVBlocking(&s.InnerSets[i], nodes)
		if len(v) == 0 {
			leftTillBlock--
			if leftTillBlock == 0 {
				return nil
			}
			continue
		}
		innerResults = append(innerResults, v)
	}
	slices.SortStableFunc(innerResults, func(a, b []ids.ID) int {
		return len(a) - len(b)
	})

	// individual validators are the cheapest way to block a child
	if len(res) > leftTillBlock {
		res = res[:leftTillBlock]
	}
	leftTillBlock -= len(res)

	// then block whole inner sets, smallest first
	for _, v := range innerResults {
		if leftTillBlock == 0 {
			break
		}
		res = append(res, v...)
		leftTillBlock--
	}
	return res
}
