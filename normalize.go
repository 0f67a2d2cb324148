// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import "github.com/luxfi/ids"

// Normalize returns an equivalent tree with redundant nesting collapsed:
// an inner set holding a single validator behind a threshold of 1 is
// merged into its parent's validator list, and a node whose only child is
// one inner set behind a threshold of 1 is replaced by that inner set.
// The input is not modified; Normalize(Normalize(s)) == Normalize(s).
func Normalize(s Set) Set {
	res := Set{
		Threshold:  s.Threshold,
		Validators: append([]ids.ID(nil), s.Validators...),
	}
	for i := range s.InnerSets {
		inner := Normalize(s.InnerSets[i])
		if inner.Threshold == 1 && len(inner.Validators) == 1 && len(inner.InnerSets) == 0 {
			res.Validators = append(res.Validators, inner.Validators[0])
			continue
		}
		res.InnerSets = append(res.InnerSets, inner)
	}
	if res.Threshold == 1 && len(res.Validators) == 0 && len(res.InnerSets) == 1 {
		return res.InnerSets[0]
	}
	return res
}
