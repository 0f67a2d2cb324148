// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package check implements "quorumtool check": load a node configuration,
// run the quorum safety validation and report the effective structure.
package check

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/log"

	"github.com/luxfi/quorum"
	"github.com/luxfi/quorum/config"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "check",
		Short: "Loads and validates a node configuration file",
		RunE:  checkFunc,
	}
	AddFlags(c.Flags())
	return c
}

func checkFunc(c *cobra.Command, args []string) error {
	flags, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFile(log.Root(), flags.ConfigPath)
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	if !flags.Quiet {
		fmt.Fprintln(out, quorum.Render(&cfg.QuorumSet, cfg.Names.ShortDisplay))
	}
	fmt.Fprintf(out, "configuration is safe: %d validators, failure safety %d\n",
		cfg.QuorumSet.AllNodes().Len(), cfg.FailureSafety)
	return nil
}
