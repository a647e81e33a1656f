package drivefs

import (
	"bytes"
	"fmt"
	"io/fs"

	fserrors "github.com/Jumpaku/go-outputfs/errors"
	"google.golang.org/api/drive/v3"
)

// uploadWriter buffers written data and uploads it as the whole content of the file on Close.
type uploadWriter struct {
	service *drive.Service
	fileID  string
	buf     bytes.Buffer
	closed  bool
}

func (w *uploadWriter) Write(b []byte) (n int, err error) {
	if w.closed {
		return 0, fserrors.NewIOError(fmt.Sprintf("write '%s'", w.fileID), fs.ErrClosed)
	}
	return w.buf.Write(b)
}

func (w *uploadWriter) Close() error {
	if w.closed {
		return fserrors.NewIOError(fmt.Sprintf("close '%s'", w.fileID), fs.ErrClosed)
	}
	w.closed = true
	return uploadFile(w.service, w.fileID, w.buf.Bytes())
}
