// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/luxfi/quorum"
)

// GenerateQuorumSet derives a quorum-set tree from the declared validator
// list: validators are grouped by home domain within each quality tier,
// domains use a simple-majority threshold, tiers nest under each other in
// descending quality and use byzantine thresholds across groups.
func GenerateQuorumSet(validators []ValidatorEntry) (quorum.Set, error) {
	sorted := slices.Clone(validators)
	slices.SortStableFunc(sorted, func(a, b ValidatorEntry) int {
		if a.Quality != b.Quality {
			// quality descending
			return int(b.Quality) - int(a.Quality)
		}
		return strings.Compare(a.HomeDomain, b.HomeDomain)
	})

	qs, err := generateQuorumSetHelper(sorted, QualityHigh)
	if err != nil {
		return quorum.Set{}, err
	}
	return quorum.Normalize(qs), nil
}

func generateQuorumSetHelper(validators []ValidatorEntry, tier Quality) (quorum.Set, error) {
	var ret quorum.Set
	i := 0
	for i < len(validators) && validators[i].Quality == tier {
		// one inner set per contiguous home-domain run
		var inner quorum.Set
		j := i
		for ; j < len(validators) && validators[j].HomeDomain == validators[i].HomeDomain; j++ {
			if validators[j].Quality != validators[i].Quality {
				return quorum.Set{}, fmt.Errorf(
					"%w: validators %q and %q must have the same quality",
					ErrInvalidConfig, validators[i].Name, validators[j].Name)
			}
			inner.Validators = append(inner.Validators, validators[j].Key)
		}
		if tier == QualityHigh && len(inner.Validators) < 3 {
			return quorum.Set{}, fmt.Errorf(
				"%w: high quality validator %q must have redundancy of at least 3",
				ErrInvalidConfig, validators[i].Name)
		}
		inner.Threshold = quorum.DefaultThreshold(&inner, true)
		ret.InnerSets = append(ret.InnerSets, inner)
		i = j
	}
	if i < len(validators) {
		if validators[i].Quality > tier {
			return quorum.Set{}, fmt.Errorf(
				"%w: invalid quality for validator %q (tiers must be descending)",
				ErrInvalidConfig, validators[i].Name)
		}
		lower, err := generateQuorumSetHelper(validators[i:], validators[i].Quality)
		if err != nil {
			return quorum.Set{}, err
		}
		ret.InnerSets = append(ret.InnerSets, lower)
	}
	ret.Threshold = quorum.DefaultThreshold(&ret, false)
	return ret, nil
}
