// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package check

import (
	"errors"

	"github.com/spf13/pflag"
)

const (
	ConfigKey = "config"
	QuietKey  = "quiet"
)

var errMissingConfig = errors.New("a configuration file is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(ConfigKey, "", "Path of the node configuration file to check (required)")
	flags.Bool(QuietKey, false, "Suppress the rendered quorum set, report only the result")
}

type Flags struct {
	ConfigPath string
	Quiet      bool
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Flags, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	path, err := flags.GetString(ConfigKey)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errMissingConfig
	}

	quiet, err := flags.GetBool(QuietKey)
	if err != nil {
		return nil, err
	}

	return &Flags{
		ConfigPath: path,
		Quiet:      quiet,
	}, nil
}
