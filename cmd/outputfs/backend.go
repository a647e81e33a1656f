package main

import (
	"context"
	"fmt"

	"github.com/Jumpaku/go-outputfs"
	"github.com/Jumpaku/go-outputfs/drivefs"
	"github.com/Jumpaku/go-outputfs/hdfsfs"
	"github.com/Jumpaku/go-outputfs/internal/config"
	"github.com/Jumpaku/go-outputfs/localfs"
	"github.com/Jumpaku/go-outputfs/memfs"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// openFileSystem creates the backend selected by cfg. The returned close function
// releases connections held by the backend.
func openFileSystem(ctx context.Context, cfg config.Config) (fsys outputfs.FileSystem, closeFn func() error, err error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendMemory:
		return memfs.New(), noop, nil
	case config.BackendLocal:
		return localfs.New(cfg.Root), noop, nil
	case config.BackendDrive:
		service, err := newDriveService(ctx)
		if err != nil {
			return nil, nil, err
		}
		return drivefs.New(service, cfg.DriveRootID), noop, nil
	case config.BackendHDFS:
		h, err := hdfsfs.Dial(cfg.Namenode, cfg.HDFSUser)
		if err != nil {
			return nil, nil, err
		}
		return h, h.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// newDriveService authenticates with Application Default Credentials.
func newDriveService(ctx context.Context) (*drive.Service, error) {
	client, err := google.DefaultClient(ctx, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}

	service, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return service, nil
}
