package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ptvplanner/internal/common/logger"
)

// Download fetches url into destPath via a temp file so a failed download
// never leaves a truncated archive behind.
func Download(ctx context.Context, url, destPath string, log logger.Logger) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	tempFile, err := os.CreateTemp(destDir, "gtfs_download_*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	log.Info("Starting download", "url", url, "dest", destPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		tempFile.Close()
		return fmt.Errorf("creating request: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute} // Large files may take time
	resp, err := client.Do(req)
	if err != nil {
		tempFile.Close()
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		tempFile.Close()
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	written, err := io.Copy(tempFile, resp.Body)
	tempFile.Close()
	if err != nil {
		return fmt.Errorf("downloading file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		return fmt.Errorf("moving file to destination: %w", err)
	}

	log.Info("Download completed", "url", url, "dest", destPath, "size_bytes", written)
	return nil
}
