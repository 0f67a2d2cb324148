// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"slices"

	"github.com/luxfi/quorum"
)

// defaultThresholdPercent is used for manual groups that don't specify
// threshold_percent. Roughly 2/3, assuming byzantine failures.
const defaultThresholdPercent = 67

// parseQuorumSet recursively builds a quorum-set tree from an
// operator-supplied [quorum_set] table. Any key that is not
// threshold_percent or validators introduces a nested group; groups are
// processed in name order so the resulting tree is deterministic.
func (c *Config) parseQuorumSet(table map[string]any, depth int) (quorum.Set, error) {
	if depth > quorum.MaxNestingDepth {
		return quorum.Set{}, fmt.Errorf("%w: too many levels in quorum set", ErrInvalidConfig)
	}

	var (
		qs               quorum.Set
		thresholdPercent = uint32(defaultThresholdPercent)
	)

	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		switch v := table[key]; key {
		case "threshold_percent":
			pct, err := readPercent(key, v)
			if err != nil {
				return quorum.Set{}, err
			}
			thresholdPercent = pct
		case "validators":
			tokens, err := readStringArray(key, v)
			if err != nil {
				return quorum.Set{}, err
			}
			for _, token := range tokens {
				id, err := c.parseNodeID(token)
				if err != nil {
					return quorum.Set{}, err
				}
				qs.Validators = append(qs.Validators, id)
			}
		default:
			group, err := readTable(key, v)
			if err != nil {
				return quorum.Set{}, fmt.Errorf("%w: quorum set entry %q must be a group", ErrInvalidConfig, key)
			}
			inner, err := c.parseQuorumSet(group, depth+1)
			if err != nil {
				return quorum.Set{}, fmt.Errorf("group %q: %w", key, err)
			}
			qs.InnerSets = append(qs.InnerSets, inner)
		}
	}

	threshold, err := quorum.ThresholdFromPercent(uint32(qs.NumChildren()), thresholdPercent)
	if err != nil {
		return quorum.Set{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if threshold == 0 || qs.NumChildren() == 0 {
		return quorum.Set{}, fmt.Errorf("%w: empty quorum set group", ErrInvalidConfig)
	}
	qs.Threshold = threshold
	return qs, nil
}
