package main

import (
	"errors"
	"fmt"

	"github.com/Jumpaku/go-outputfs"
	"github.com/spf13/cobra"
)

func newLsCmd(opts *globalOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "ls DIR",
		Short: "List output files in a directory",
		Long: `List the regular files directly inside DIR.

Entries whose name starts with '_' or '.' (e.g., _SUCCESS, .crc files) are skipped
unless --all is given. Subdirectories are never listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			fsys, closeFn, err := openFileSystem(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeFn()) }()

			filter := outputfs.FilterHiddenFiles
			if all {
				filter = nil
			}
			files, err := outputfs.ListFiles(fsys, outputfs.Path(args[0]), filter)
			if err != nil {
				return err
			}
			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden files")
	return cmd
}
