package httpclient

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kbukum/wxadapter/platform"
)

// multipartBody is an upload body: form fields followed by one file part.
type multipartBody struct {
	// Fields are simple key-value form fields.
	Fields map[string]string
	// FieldName is the form field name of the file part.
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the file part MIME type. Empty means
	// application/octet-stream.
	ContentType string
	// File is the file content.
	File io.Reader
}

// writeTo streams the multipart encoding to w.
func (m *multipartBody) writeTo(mw *multipart.Writer) error {
	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, m.Fields[k]); err != nil {
			return err
		}
	}

	var part io.Writer
	var err error
	if m.ContentType != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(m.FieldName)+`"; filename="`+escapeQuotes(m.FileName)+`"`)
		header.Set("Content-Type", m.ContentType)
		part, err = mw.CreatePart(header)
	} else {
		part, err = mw.CreateFormFile(m.FieldName, m.FileName)
	}
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, m.File); err != nil {
		return err
	}
	return mw.Close()
}

func (c *Client) doUpload(ctx context.Context, t *Task, opts *platform.Options) (*platform.Result, error) {
	f, err := os.Open(opts.FilePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	body := &multipartBody{
		Fields:      opts.FormData,
		FieldName:   opts.Name,
		FileName:    filepath.Base(opts.FilePath),
		ContentType: mime.TypeByExtension(filepath.Ext(opts.FilePath)),
		File:        newProgressReader(f, info.Size(), t.emitProgress),
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		_ = pw.CloseWithError(body.writeTo(mw))
	}()
	defer func() { _ = pr.Close() }()

	req, err := c.newRequest(ctx, t.op, http.MethodPost, opts.URL, pr, opts.Header)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	header := flattenHeaders(resp.Header)
	t.emitHeaders(resp.StatusCode, header)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &platform.Result{
		StatusCode: resp.StatusCode,
		Data:       string(raw),
		Header:     header,
		Cookies:    resp.Header.Values("Set-Cookie"),
		ErrMsg:     t.op + ":ok",
	}, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
