// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"math"
)

// Typed accessors over the raw key/value tree produced by the TOML
// decoder. Every mismatch is reported against the key it occurred under.

func readBool(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrInvalidConfig, key)
	}
	return b, nil
}

func readString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidConfig, key)
	}
	return s, nil
}

func readInt(key string, v any, minVal, maxVal int64) (int64, error) {
	i, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
	}
	if i < minVal || i > maxVal {
		return 0, fmt.Errorf("%w: %s out of range [%d, %d]", ErrInvalidConfig, key, minVal, maxVal)
	}
	return i, nil
}

func readStringArray(key string, v any) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array", ErrInvalidConfig, key)
	}
	res := make([]string, 0, len(arr))
	for _, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("%w: invalid element of %s", ErrInvalidConfig, key)
		}
		res = append(res, s)
	}
	return res, nil
}

func readTable(key string, v any) (map[string]any, error) {
	t, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a table", ErrInvalidConfig, key)
	}
	return t, nil
}

// readTableArray accepts both decodings the TOML library produces for
// [[key]] blocks.
func readTableArray(key string, v any) ([]map[string]any, error) {
	switch arr := v.(type) {
	case []map[string]any:
		return arr, nil
	case []any:
		res := make([]map[string]any, 0, len(arr))
		for _, elem := range arr {
			t, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: malformed %s", ErrInvalidConfig, key)
			}
			res = append(res, t)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: malformed %s", ErrInvalidConfig, key)
	}
}

func readPercent(key string, v any) (uint32, error) {
	i, err := readInt(key, v, 1, 100)
	if err != nil {
		return 0, err
	}
	return uint32(i), nil
}

func readInt32(key string, v any, minVal int32) (int32, error) {
	i, err := readInt(key, v, int64(minVal), math.MaxInt32)
	if err != nil {
		return 0, err
	}
	return int32(i), nil
}
