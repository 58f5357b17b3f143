package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/wxadapter/logger"
	"github.com/kbukum/wxadapter/platform"
	"github.com/kbukum/wxadapter/resilience"
)

// Primitive names used in failure messages.
const (
	OpRequest  = "request"
	OpUpload   = "uploadFile"
	OpDownload = "downloadFile"
)

// Client runs the host platform primitives over net/http.
type Client struct {
	httpClient *http.Client
	config     Config
	bulkhead   *resilience.Bulkhead
	log        *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup
}

var _ platform.Platform = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l.WithComponent("httpclient")
		}
	}
}

// WithTransport replaces the HTTP transport, e.g. for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// New creates a new HTTP platform with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	tlsCfg, err := cfg.TLS.build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	// Timeouts are per call through the request context, so downloads are
	// not cut off by a client-wide limit.
	httpClient := &http.Client{Transport: transport}
	if cfg.CookieJar {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("httpclient: cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	c := &Client{
		httpClient: httpClient,
		config:     cfg,
		log:        logger.WithComponent("httpclient"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          cfg.Name,
		MaxConcurrent: cfg.MaxConcurrent,
		MaxWait:       cfg.MaxWait,
		OnReject: func(name string, err error) {
			c.log.Warn("transfer rejected", logger.Fields("bulkhead", name, logger.FieldError, err.Error()))
		},
	})
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c, nil
}

// Request performs a generic HTTP request.
func (c *Client) Request(opts *platform.Options) platform.Handle {
	return c.start(OpRequest, opts, c.doRequest)
}

// UploadFile sends opts.FilePath as multipart form data.
func (c *Client) UploadFile(opts *platform.Options) platform.Handle {
	return c.start(OpUpload, opts, c.doUpload)
}

// DownloadFile saves the response body to opts.FilePath, or to a temp
// file in Config.DownloadDir.
func (c *Client) DownloadFile(opts *platform.Options) platform.Handle {
	return c.start(OpDownload, opts, c.doDownload)
}

// Close aborts in-flight transfers and waits for their goroutines.
func (c *Client) Close(ctx context.Context) error {
	c.cancel()
	done := make(chan struct{})
	go func() {
		c.tasks.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsAvailable reports whether the client is open and has a free slot.
func (c *Client) IsAvailable(_ context.Context) bool {
	return c.ctx.Err() == nil && c.bulkhead.Stats().Free() > 0
}

// Slots reports transfer slot usage.
func (c *Client) Slots() resilience.BulkheadStats {
	return c.bulkhead.Stats()
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

type transferFunc func(ctx context.Context, t *Task, opts *platform.Options) (*platform.Result, error)

// start returns the task at once and runs the transfer on a goroutine.
func (c *Client) start(op string, opts *platform.Options, run transferFunc) *Task {
	t := newTask(c.ctx, uuid.NewString(), op)
	c.tasks.Add(1)
	go func() {
		defer c.tasks.Done()
		defer t.cancel()
		c.execute(t, opts, run)
	}()
	return t
}

func (c *Client) execute(t *Task, opts *platform.Options, run transferFunc) {
	log := c.log.WithFields(logger.Fields(logger.FieldTaskID, t.id, logger.FieldOperation, t.op))

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.config.Timeout
	}
	ctx, cancel := context.WithTimeout(t.ctx, timeout)
	defer cancel()

	res, err := c.transfer(ctx, t, opts, run)

	// An aborted task delivers nothing.
	if t.Aborted() {
		log.Debug("transfer aborted")
		return
	}
	if err != nil {
		fe := classify(t.op, err)
		log.Debug("transfer failed", logger.Fields(logger.FieldError, fe.Error()))
		if opts.Fail != nil {
			opts.Fail(fe.Failure())
		}
	} else {
		log.Debug("transfer done", logger.Fields(logger.FieldStatus, res.StatusCode))
		if opts.Success != nil {
			opts.Success(res)
		}
	}
	if opts.Complete != nil {
		opts.Complete()
	}
}

func (c *Client) transfer(ctx context.Context, t *Task, opts *platform.Options, run transferFunc) (*platform.Result, error) {
	release, err := c.bulkhead.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return run(ctx, t, opts)
}

func (c *Client) doRequest(ctx context.Context, t *Task, opts *platform.Options) (*platform.Result, error) {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	target := opts.URL
	data := opts.Data
	if method == http.MethodGet || method == http.MethodHead {
		if q, ok := queryFromData(data); ok {
			target = appendQuery(target, q)
			data = nil
		}
	}

	body, contentType, err := encodeBody(data)
	if err != nil {
		return nil, invalidRequest(t.op, fmt.Errorf("encode body: %w", err))
	}
	req, err := c.newRequest(ctx, t.op, method, target, body, opts.Header)
	if err != nil {
		return nil, err
	}
	if body != nil && req.Header.Get("Content-Type") == "" && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	header := flattenHeaders(resp.Header)
	t.emitHeaders(resp.StatusCode, header)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &platform.Result{
		StatusCode: resp.StatusCode,
		Data:       decodeBody(raw, opts.DataType, opts.ResponseType),
		Header:     header,
		Cookies:    resp.Header.Values("Set-Cookie"),
		ErrMsg:     t.op + ":ok",
	}, nil
}

// newRequest builds an *http.Request with default headers, call headers
// and auth applied in that order.
func (c *Client) newRequest(ctx context.Context, op, method, target string, body io.Reader, header map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, invalidRequest(op, err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	if err := c.config.Auth.apply(req); err != nil {
		return nil, invalidRequest(op, err)
	}
	return req, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "application/octet-stream", nil
	case string:
		return strings.NewReader(v), "text/plain; charset=utf-8", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// decodeBody shapes a response body: []byte for arraybuffer, decoded JSON
// for the json data type when it parses, the body string otherwise.
func decodeBody(raw []byte, dataType, responseType string) any {
	if responseType == "arraybuffer" {
		return raw
	}
	if dataType == "json" && len(bytes.TrimSpace(raw)) > 0 {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}
	return string(raw)
}

// queryFromData turns map data of a GET request into query values.
func queryFromData(data any) (url.Values, bool) {
	q := url.Values{}
	switch m := data.(type) {
	case map[string]string:
		for k, v := range m {
			q.Set(k, v)
		}
	case map[string]any:
		for k, v := range m {
			q.Set(k, fmt.Sprint(v))
		}
	default:
		return nil, false
	}
	return q, true
}

func appendQuery(target string, q url.Values) string {
	if len(q) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + q.Encode()
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
