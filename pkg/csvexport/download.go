package csvexport

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"os"
	"path/filepath"
	"time"
)

var (
	errEmptyFilename = errors.New("filename is required")
	errNoDownloader  = errors.New("downloader is required")
)

// now is swapped in tests.
var now = time.Now

// Blob is an export ready to be handed to the user.
type Blob struct {
	Name string
	Type string
	Data []byte
}

// Downloader delivers a Blob to the user: a file on disk, an HTTP response, a clipboard.
type Downloader interface {
	Download(b Blob) error
}

// DownloaderFunc adapts a function to the Downloader interface.
type DownloaderFunc func(b Blob) error

func (f DownloaderFunc) Download(b Blob) error {
	return f(b)
}

// Export renders items as CSV and triggers a download. An empty filename defaults to
// export_YYYY-MM-DD.csv for the current date.
func Export[T any](items []T, columns []Column, getValue ValueFunc[T], filename string, d Downloader) error {
	if filename == "" {
		filename = DefaultFilename(now())
	}
	return TriggerDownload(Build(items, columns, getValue), filename, d)
}

// TriggerDownload packages content as a CSV blob and hands it to d. Failures are returned as
// is; there is no retry.
func TriggerDownload(content, filename string, d Downloader) error {
	if filename == "" {
		return errEmptyFilename
	}
	if d == nil {
		return errNoDownloader
	}
	return d.Download(Blob{
		Name: filename,
		Type: MIMEType,
		Data: []byte(content),
	})
}

// FileDownloader writes blobs into Dir. The file is written under a temporary name and renamed
// into place once complete, so readers never see a partial export.
type FileDownloader struct {
	Dir string
}

func (f *FileDownloader) Download(b Blob) error {
	dir := f.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ogrid-export-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary export file: %w", err)
	}
	// always release the temporary handle; after a successful rename the remove is a no-op
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(b.Data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}

	target := filepath.Join(dir, filepath.Base(b.Name))
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}

	log.Debug().Str("file", target).Int("bytes", len(b.Data)).Msg("CSV export written")
	return nil
}
