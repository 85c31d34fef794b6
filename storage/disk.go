package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// DiskStorage keeps media under Root, mirroring the slash separated media paths
type DiskStorage struct {
	Storage
	// Root is a directory (usually a mounted volume) writable by the current process
	Root       string
	knownDirs  map[string]bool
	knownMutex sync.Mutex
}

func (s *DiskStorage) ensureDir(dir string) error {
	s.knownMutex.Lock()
	defer s.knownMutex.Unlock()

	if s.knownDirs[dir] {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	s.knownDirs[dir] = true
	return nil
}

func (s *DiskStorage) fullPath(path string) string {
	return filepath.Join(s.Root, filepath.FromSlash(path))
}

// Save writes to a temporary file first, readers never see a partial image
func (s *DiskStorage) Save(path string, reader io.Reader, mimeType string) (written int64, err error) {
	fileName := s.fullPath(path)
	dir := filepath.Dir(fileName)
	if err = s.ensureDir(dir); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if written, err = io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return written, err
	}
	if err = tmp.Close(); err != nil {
		return written, err
	}
	return written, os.Rename(tmp.Name(), fileName)
}

func (s *DiskStorage) Load(path string, writer io.Writer) (int64, error) {
	file, err := os.Open(s.fullPath(path))
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return io.Copy(writer, file)
}

// Serve answers 404 for directories instead of listing them
func (s *DiskStorage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	file, err := os.Open(s.fullPath(path))
	if err != nil {
		http.NotFound(writer, request)
		return
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(writer, request)
		return
	}
	http.ServeContent(writer, request, info.Name(), info.ModTime(), file)
}

// Delete removes the file and its post directory once that is empty
func (s *DiskStorage) Delete(path string) error {
	fileName := s.fullPath(path)
	if err := os.Remove(fileName); err != nil {
		return err
	}
	dir := filepath.Dir(fileName)
	if dir == filepath.Clean(s.Root) {
		return nil
	}
	if os.Remove(dir) == nil {
		s.knownMutex.Lock()
		delete(s.knownDirs, dir)
		s.knownMutex.Unlock()
	}
	return nil
}

// GetFreeSpace returns the bytes available to unprivileged users on the Root filesystem
func (s *DiskStorage) GetFreeSpace() uint64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(s.Root, &stat); err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}

func NewDiskStorage(bucket *Bucket) StorageAPI {
	return &DiskStorage{
		Root: bucket.Path,
		Storage: Storage{
			Bucket: *bucket,
		},
		knownDirs: make(map[string]bool, 10),
	}
}
