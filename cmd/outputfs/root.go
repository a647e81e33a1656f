package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Jumpaku/go-outputfs"
	"github.com/Jumpaku/go-outputfs/internal/config"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	configPath  string
	backend     string
	root        string
	driveRootID string
	namenode    string
	hdfsUser    string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "outputfs",
		Short: "Inspect and prepare job output files",
		Long: `Inspect and prepare the files a data-processing job reads and writes.

Backends:
- local:  the local disk, paths relative to --root
- drive:  Google Drive, paths relative to the folder --drive-root-id
- hdfs:   HDFS through the namenode --namenode
- memory: an empty in-memory filesystem`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.backend, "backend", config.BackendLocal, "filesystem backend (local, drive, hdfs, memory)")
	flags.StringVar(&opts.root, "root", ".", "base directory of the local backend")
	flags.StringVar(&opts.driveRootID, "drive-root-id", "", "folder ID paths are resolved from on Google Drive")
	flags.StringVar(&opts.namenode, "namenode", "", "HDFS namenode address (host:port)")
	flags.StringVar(&opts.hdfsUser, "hdfs-user", "", "HDFS user name")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log discovered entries")

	cmd.AddCommand(newLsCmd(opts))
	cmd.AddCommand(newPutCmd(opts))
	cmd.AddCommand(newJoinCmd())
	return cmd
}

// loadConfig reads the configuration file, if any, and applies explicitly set flags on top.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Defaults()
	if o.configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = o.backend
	}
	if flags.Changed("root") {
		cfg.Root = o.root
	}
	if flags.Changed("drive-root-id") {
		cfg.DriveRootID = o.driveRootID
	}
	if flags.Changed("namenode") {
		cfg.Namenode = o.namenode
	}
	if flags.Changed("hdfs-user") {
		cfg.HDFSUser = o.hdfsUser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Verbose {
		outputfs.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return cfg, nil
}
