// Package upload receives media files from multipart requests and manages
// the directory they are stored in.
//
// The package never touches the database: Receive hands the generated file
// name back to the caller, who records it.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/personal-site/internal/apperror"
)

// MaxFileSize is the default cap on a single uploaded file (2 GiB).
const MaxFileSize int64 = 2 << 30

// Store owns the media directory.
type Store struct {
	dir     string
	maxSize int64
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore creates dir if needed and returns a Store that accepts files up
// to maxSize bytes (MaxFileSize when maxSize <= 0).
func NewStore(dir string, maxSize int64, logger *slog.Logger) (*Store, error) {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("upload: resolving media dir %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("upload: creating media dir %q: %w", abs, err)
	}

	return &Store{dir: abs, maxSize: maxSize, logger: logger, now: time.Now}, nil
}

// Dir returns the absolute media directory.
func (s *Store) Dir() string {
	return s.dir
}

// MaxSize returns the per-file size cap in bytes.
func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// Path returns where filename lives on disk.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Remove deletes a stored file. A file that is already gone is not an
// error; the caller may still drop the record that pointed at it.
func (s *Store) Remove(filename string) error {
	if !validName(filename) {
		return apperror.Storage("Failed to delete file", fmt.Errorf("refusing to remove %q", filename))
	}

	err := os.Remove(s.Path(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("media file already missing", slog.String("filename", filename))
			return nil
		}
		return apperror.Storage("Failed to delete file", err)
	}

	return nil
}

// newFilename returns "<unix millis>-<xid><ext>". The xid suffix keeps two
// uploads in the same millisecond apart.
func (s *Store) newFilename(ext string) string {
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), xid.New().String(), ext)
}

// save streams src into a temp file inside the media dir and renames it to
// a generated name. Nothing is left behind on failure.
func (s *Store) save(src io.Reader, ext string) (string, int64, error) {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", 0, apperror.Storage("Failed to store file", err)
	}
	tmpPath := tmp.Name()
	discard := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	in := &sourceReader{r: io.LimitReader(src, s.maxSize+1)}
	n, err := io.Copy(tmp, in)
	if err != nil {
		discard()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", 0, apperror.TooLarge(s.maxSize)
		}
		if in.err != nil {
			return "", 0, apperror.ValidationFailed("file", "Upload was interrupted or malformed")
		}
		return "", 0, apperror.Storage("Failed to store file", err)
	}
	if n > s.maxSize {
		discard()
		return "", 0, apperror.TooLarge(s.maxSize)
	}

	if err := tmp.Chmod(0o644); err != nil {
		discard()
		return "", 0, apperror.Storage("Failed to store file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", 0, apperror.Storage("Failed to store file", err)
	}

	name := s.newFilename(ext)
	if err := os.Rename(tmpPath, s.Path(name)); err != nil {
		os.Remove(tmpPath)
		return "", 0, apperror.Storage("Failed to store file", err)
	}

	return name, n, nil
}

// sourceReader remembers a read failure so save can tell a broken request
// body apart from a failing disk.
type sourceReader struct {
	r   io.Reader
	err error
}

func (r *sourceReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF {
		r.err = err
	}
	return n, err
}

// validName rejects anything that is not a bare file name inside the
// media directory.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name
}
