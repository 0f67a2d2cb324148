// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

import "crypto/sha256"

// HashLen is the length in bytes of a sha256 hash.
const HashLen = sha256.Size

// ComputeHash256Array computes the sha256 hash of [buf].
func ComputeHash256Array(buf []byte) [HashLen]byte {
	return sha256.Sum256(buf)
}
