package outputfs

import (
	fserrors "github.com/Jumpaku/go-outputfs/errors"
)

var (
	ErrInvalidPath     = fserrors.ErrInvalidPath
	ErrAPIError        = fserrors.ErrAPIError
	ErrIOError         = fserrors.ErrIOError
	ErrNotFound        = fserrors.ErrNotFound
	ErrAlreadyExists   = fserrors.ErrAlreadyExists
	ErrNotWritable     = fserrors.ErrNotWritable
	ErrMultipleMatches = fserrors.ErrMultipleMatches
)
