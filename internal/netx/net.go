// Package netx holds small HTTP helpers shared by the CLI.
package netx

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// UploadToPresignedURL PUTs body to a presigned object-storage URL. size must
// be the exact body length; presigned PUTs do not accept chunked uploads.
func UploadToPresignedURL(ctx context.Context, c *http.Client, url string, body io.Reader, size int64, contentType string) error {
	if c == nil {
		c = http.DefaultClient
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// UploadFile uploads the file at path, guessing its content type from the
// extension.
func UploadFile(ctx context.Context, c *http.Client, url, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	return UploadToPresignedURL(ctx, c, url, f, info.Size(), mime.TypeByExtension(filepath.Ext(path)))
}
