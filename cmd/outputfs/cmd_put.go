package main

import (
	"errors"

	"github.com/Jumpaku/go-outputfs"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "put PATH [LINE...]",
		Short: "Create a file with the given lines",
		Long:  `Create PATH, replacing any existing content, and write each LINE followed by a newline.`,
		Args:  cobra.MinimumNArgs(1),
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

			if err := outputfs.CreateFile(fsys, outputfs.Path(args[0]), args[1:]...); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "Created %s (%d lines)\n", args[0], len(args)-1)
			return nil
		},
	}
}
