package main

import (
	"fmt"

	"github.com/Jumpaku/go-outputfs"
	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join FRAGMENT...",
		Short: "Join path fragments",
		Long:  `Join FRAGMENTs with '/', adding a separator after each fragment that does not end with one.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			joined, err := outputfs.JoinPathFragments(args...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), joined)
			return nil
		},
	}
}
