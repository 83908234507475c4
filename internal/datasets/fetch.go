package datasets

import (
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// Archive names one remote gzip archive and the file it decompresses to.
type Archive struct {
	Name      string // Remote and local archive file name (e.g. "train-images-idx3-ubyte.gz")
	Extracted string // Decompressed file name
	Digest    string // Optional hex SHA-256 of the archive, checked before extraction
}

// Fetcher makes a fixed set of remote archives available locally,
// decompressed.
//
// Work already done is skipped: an archive whose decompressed file exists is
// never touched, and a present archive is never downloaded again. A local
// archive is still checked against its digest before extraction. Failures
// are returned as-is (wrapped) with no retry and no cleanup, so a failed
// decompression can leave a truncated output file behind.
type Fetcher struct {
	BaseURL  string       // Prefix joined with Archive.Name to form the URL
	Archives []Archive    // Archives to fetch, in order
	Client   *http.Client // HTTP client (default: http.DefaultClient)
	Output   io.Writer    // Progress notices (default: discarded)
}

// Fetch ensures every archive is present in dir in decompressed form.
//
// Parameters:
//   - ctx: Context bounding the HTTP requests
//   - dir: Destination directory, created if missing
//
// Returns the first network, filesystem, digest or decompression error.
func (f *Fetcher) Fetch(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for _, a := range f.Archives {
		if err := f.fetchArchive(ctx, dir, a); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fetcher) fetchArchive(ctx context.Context, dir string, a Archive) error {
	extPath := filepath.Join(dir, a.Extracted)
	done, err := exists(extPath)
	if err != nil || done {
		return err
	}

	gzPath := filepath.Join(dir, a.Name)
	present, err := exists(gzPath)
	if err != nil {
		return err
	}
	if present {
		if err := verifyFile(gzPath, a.Digest); err != nil {
			return err
		}
	} else if err := f.download(ctx, f.BaseURL+a.Name, gzPath, a.Digest); err != nil {
		return err
	}

	f.printf("[extract] %s\n", extPath)
	return gunzip(gzPath, extPath)
}

func (f *Fetcher) download(ctx context.Context, url, path, digest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	f.printf("[download] %s\n", url)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %w: %s", url, ErrHTTPStatus, resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}

	h := sha256.New()
	_, err = io.Copy(io.MultiWriter(out, h), resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}

	return checkDigest(path, h.Sum(nil), digest)
}

// verifyFile hashes a local archive and compares it with digest. An empty
// digest accepts any file.
func verifyFile(path, digest string) error {
	if digest == "" {
		return nil
	}

	in, err := os.Open(path) //nolint:gosec // path is built from the fetch dir
	if err != nil {
		return err
	}
	defer in.Close()

	h := sha256.New()
	if _, err := io.Copy(h, in); err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	return checkDigest(path, h.Sum(nil), digest)
}

func checkDigest(path string, sum []byte, digest string) error {
	if digest == "" {
		return nil
	}
	if got := hex.EncodeToString(sum); got != digest {
		return fmt.Errorf("%s: %w: got %s, want %s", path, ErrDigestMismatch, got, digest)
	}
	return nil
}

func (f *Fetcher) printf(format string, args ...any) {
	if f.Output != nil {
		fmt.Fprintf(f.Output, format, args...)
	}
}

// gunzip decompresses src into dst.
func gunzip(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("extract %s: %w", src, err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("extract %s: %w", src, err)
	}
	defer zr.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("extract %s: %w", src, err)
	}

	_, err = io.Copy(out, zr)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("extract %s: %w", src, err)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}
