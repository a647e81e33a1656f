package drivefs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// fakeDrive serves the subset of the Drive v3 REST API used by DriveFS.
type fakeDrive struct {
	mu      sync.Mutex
	files   map[string]*drive.File
	order   []string
	content map[string][]byte
	nextID  int
	uploads int
	failing bool
}

const fakeRootID = "root-id"

var (
	queryByNameIn = regexp.MustCompile(`^name = '((?:[^'\\]|\\.)*)' and '([^']*)' in parents and trashed = false$`)
	queryIn       = regexp.MustCompile(`^'([^']*)' in parents and trashed = false$`)
)

func newFakeDrive() *fakeDrive {
	d := &fakeDrive{files: map[string]*drive.File{}, content: map[string][]byte{}}
	d.files[fakeRootID] = &drive.File{Id: fakeRootID, Name: "root", MimeType: mimeTypeGoogleAppFolder}
	return d
}

func newTestDriveFS(t *testing.T, d *fakeDrive) *DriveFS {
	t.Helper()
	srv := httptest.NewServer(d)
	t.Cleanup(srv.Close)
	service, err := drive.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("drive.NewService() error = %v", err)
	}
	return New(service, fakeRootID)
}

func (d *fakeDrive) add(parentID, name, mimeType string, data []byte) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := fmt.Sprintf("id-%d", d.nextID)
	d.files[id] = &drive.File{Id: id, Name: name, MimeType: mimeType, Parents: []string{parentID}, Size: int64(len(data))}
	d.order = append(d.order, id)
	d.content[id] = data
	return id
}

func (d *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failing {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	p := r.URL.Path
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(p, "/files"):
		d.list(w, r)
	case r.Method == http.MethodGet && strings.Contains(p, "/files/"):
		d.get(w, p[strings.LastIndex(p, "/")+1:])
	case r.Method == http.MethodPost && strings.HasSuffix(p, "/files"):
		d.create(w, r)
	case r.Method == http.MethodPatch && (strings.Contains(p, "/upload/") || r.URL.Query().Get("uploadType") != ""):
		d.upload(w, r, p[strings.LastIndex(p, "/")+1:])
	default:
		writeError(w, http.StatusBadRequest, "unsupported request "+r.Method+" "+p)
	}
}

func (d *fakeDrive) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	var name, parentID string
	byName := false
	if m := queryByNameIn.FindStringSubmatch(q); m != nil {
		name = strings.NewReplacer(`\\`, `\`, `\'`, `'`).Replace(m[1])
		parentID = m[2]
		byName = true
	} else if m := queryIn.FindStringSubmatch(q); m != nil {
		parentID = m[1]
	} else {
		writeError(w, http.StatusBadRequest, "unsupported query "+q)
		return
	}
	list := &drive.FileList{Files: []*drive.File{}}
	for _, id := range d.order {
		f := d.files[id]
		if len(f.Parents) != 1 || f.Parents[0] != parentID {
			continue
		}
		if byName && f.Name != name {
			continue
		}
		list.Files = append(list.Files, f)
	}
	writeJSON(w, list)
}

func (d *fakeDrive) get(w http.ResponseWriter, id string) {
	f, ok := d.files[id]
	if !ok {
		writeError(w, http.StatusNotFound, "File not found: "+id)
		return
	}
	writeJSON(w, f)
}

func (d *fakeDrive) create(w http.ResponseWriter, r *http.Request) {
	var f drive.File
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d.nextID++
	f.Id = fmt.Sprintf("id-%d", d.nextID)
	d.files[f.Id] = &f
	d.order = append(d.order, f.Id)
	d.content[f.Id] = nil
	writeJSON(w, &f)
}

func (d *fakeDrive) upload(w http.ResponseWriter, r *http.Request, id string) {
	f, ok := d.files[id]
	if !ok {
		writeError(w, http.StatusNotFound, "File not found: "+id)
		return
	}
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		writeError(w, http.StatusBadRequest, "unsupported upload content type")
		return
	}
	mr := multipart.NewReader(r.Body, params["boundary"])
	var data []byte
	for i := 0; ; i++ {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		b, err := io.ReadAll(part)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// The first part holds the metadata, the second the media.
		if i == 1 {
			data = b
		}
	}
	d.content[id] = data
	f.Size = int64(len(data))
	d.uploads++
	writeJSON(w, f)
}

func (d *fakeDrive) contentOf(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return string(d.content[id])
}

func (d *fakeDrive) uploadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.uploads
}

func (d *fakeDrive) setFailing(failing bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.failing = failing
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": msg},
	})
}
