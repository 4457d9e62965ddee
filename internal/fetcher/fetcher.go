// Package fetcher opens well dataset locations (local paths, HTTP(S) and FTP
// URLs) and parses delimited text and XLSX workbooks into string rows.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Format is the tabular layout of a dataset file.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatZIP     Format = "zip"
	FormatUnknown Format = ""
)

// FormatOf infers the format of a location from its extension. URL query
// strings are ignored.
func FormatOf(location string) Format {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".csv", ".txt", ".tsv", ".dsv":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	case ".zip":
		return FormatZIP
	default:
		return FormatUnknown
	}
}

// Downloader fetches a remote resource.
type Downloader interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Opener resolves dataset locations to readers.
type Opener struct {
	HTTP Downloader
	FTP  Downloader
}

// NewOpener returns an Opener backed by the HTTP and FTP fetchers.
func NewOpener(httpOpts HTTPOptions, ftpOpts FTPOptions) *Opener {
	return &Opener{
		HTTP: NewHTTPFetcher(httpOpts),
		FTP:  NewFTPFetcher(ftpOpts),
	}
}

// IsRemote reports whether location is a URL rather than a local path.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
		return true
	}
	return false
}

// Open returns a reader for location. The caller must close it.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return o.HTTP.Download(ctx, location)
		case "ftp":
			return o.FTP.Download(ctx, location)
		case "file":
			location = u.Path
		}
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", location)
	}
	return f, nil
}

// Localize makes location available as a file on disk, downloading remote
// locations into dir. The returned cleanup removes anything it created.
func (o *Opener) Localize(ctx context.Context, location, dir string) (string, func(), error) {
	noop := func() {}
	if !IsRemote(location) {
		return strings.TrimPrefix(location, "file://"), noop, nil
	}

	rc, err := o.Open(ctx, location)
	if err != nil {
		return "", noop, err
	}
	defer rc.Close() //nolint:errcheck

	name := "dataset" + path.Ext(location)
	if u, err := url.Parse(location); err == nil {
		name = "dataset" + path.Ext(u.Path)
	}
	tmp, err := os.MkdirTemp(dir, "wellplay-*")
	if err != nil {
		return "", noop, eris.Wrap(err, "fetcher: create temp dir")
	}
	cleanup := func() { _ = os.RemoveAll(tmp) }

	dst := filepath.Join(tmp, name)
	out, err := os.Create(dst)
	if err != nil {
		cleanup()
		return "", noop, eris.Wrap(err, "fetcher: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		cleanup()
		return "", noop, eris.Wrap(err, "fetcher: write file")
	}
	return dst, cleanup, nil
}
