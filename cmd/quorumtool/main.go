// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/quorum/cmd/quorumtool/check"
)

func main() {
	root := &cobra.Command{
		Use:          "quorumtool",
		Short:        "Inspects and validates federated quorum configurations",
		SilenceUsage: true,
	}
	root.AddCommand(check.Command())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
