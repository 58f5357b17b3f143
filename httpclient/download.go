package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/kbukum/wxadapter/platform"
)

func (c *Client) doDownload(ctx context.Context, t *Task, opts *platform.Options) (*platform.Result, error) {
	req, err := c.newRequest(ctx, t.op, http.MethodGet, opts.URL, nil, opts.Header)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	header := flattenHeaders(resp.Header)
	t.emitHeaders(resp.StatusCode, header)

	f, err := c.createDestination(opts)
	if err != nil {
		return nil, err
	}
	name := f.Name()

	_, err = io.Copy(f, newProgressReader(resp.Body, resp.ContentLength, t.emitProgress))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(name)
		return nil, fmt.Errorf("write %s: %w", name, err)
	}

	res := &platform.Result{
		StatusCode: resp.StatusCode,
		Header:     header,
		Cookies:    resp.Header.Values("Set-Cookie"),
		ErrMsg:     t.op + ":ok",
	}
	if opts.FilePath != "" {
		res.FilePath = name
	} else {
		res.TempFilePath = name
	}
	return res, nil
}

// createDestination opens opts.FilePath, creating parent directories, or
// a new temp file named after the URL's extension.
func (c *Client) createDestination(opts *platform.Options) (*os.File, error) {
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, err
		}
		return os.Create(opts.FilePath)
	}

	ext := ""
	if u, err := url.Parse(opts.URL); err == nil {
		ext = path.Ext(u.Path)
	}
	return os.CreateTemp(c.config.DownloadDir, "download-*"+ext)
}
