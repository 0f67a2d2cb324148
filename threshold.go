// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"fmt"

	"github.com/luxfi/quorum/utils/math"
)

// Policy selects the failure model a threshold is computed under.
type Policy uint8

const (
	// SimpleMajority requires a strict majority: n = 2f+1.
	SimpleMajority Policy = iota
	// Byzantine tolerates arbitrary failures: n = 3f+1.
	Byzantine
)

// Threshold returns the vote threshold for a flat group of n members under
// the given policy. The caller is responsible for rejecting empty groups;
// n == 0 yields 0.
func Threshold(n uint32, policy Policy) uint32 {
	if n == 0 {
		return 0
	}
	if policy == SimpleMajority {
		return n - (n-1)/2
	}
	return n - (n-1)/3
}

// DefaultThreshold returns the threshold for s's direct children. A simple
// majority is only honored when s has no inner sets; nested groups always
// assume byzantine failures.
func DefaultThreshold(s *Set, simpleMajority bool) uint32 {
	n := uint32(s.NumChildren())
	if simpleMajority && len(s.InnerSets) == 0 {
		return Threshold(n, SimpleMajority)
	}
	return Threshold(n, Byzantine)
}

// ThresholdFromPercent returns the smallest threshold covering at least
// percent of n members, never less than 1 for non-zero inputs.
func ThresholdFromPercent(n, percent uint32) (uint32, error) {
	if n == 0 || percent == 0 {
		return 0, nil
	}
	scaled, err := math.Mul(n, percent)
	if err != nil {
		return 0, fmt.Errorf("threshold of %d%% over %d members: %w", percent, n, err)
	}
	// ceiling of n*percent/100
	return 1 + (scaled-1)/100, nil
}
