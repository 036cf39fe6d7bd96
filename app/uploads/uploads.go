package uploads

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Uploader stores an uploaded file and returns a reference URL for it.
// Remove undoes a Save when the record the file belongs to could not be
// written.
type Uploader interface {
	Save(filename string, r io.Reader) (string, error)
	Remove(url string) error
}

// DiskUploader writes uploads to a local directory served under baseURL.
type DiskUploader struct {
	dir     string
	baseURL string
}

// NewDiskUploader creates the upload directory if needed.
func NewDiskUploader(dir, baseURL string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}
	return &DiskUploader{dir: dir, baseURL: baseURL}, nil
}

// Save writes the file under a random name, keeping the original
// extension, and returns the URL it will be served from.
func (u *DiskUploader) Save(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write upload: %v", err)
	}

	return path.Join(u.baseURL, name), nil
}

// Remove deletes the file behind a URL previously returned by Save.
func (u *DiskUploader) Remove(url string) error {
	name := path.Base(url)
	if name == "." || name == "/" {
		return fmt.Errorf("invalid upload url: %s", url)
	}
	if err := os.Remove(filepath.Join(u.dir, name)); err != nil {
		return fmt.Errorf("failed to remove upload: %v", err)
	}
	return nil
}
