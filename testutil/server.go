package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/wxadapter/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// RecordedRequest is a request seen by the fixture server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
}

// EchoResponse is the JSON body of /echo.
type EchoResponse struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Query   map[string]string `json:"query"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// UploadResponse is the JSON body of /upload.
type UploadResponse struct {
	Field    string            `json:"field"`
	Filename string            `json:"filename"`
	Size     int64             `json:"size"`
	Type     string            `json:"type"`
	Fields   map[string]string `json:"fields"`
	Content  string            `json:"content"`
}

// FixtureServer is a test HTTP server backed by httptest.Server and a
// gin engine carrying the fixture routes.
type FixtureServer struct {
	mu       sync.RWMutex
	ts       *httptest.Server
	engine   *gin.Engine
	requests []RecordedRequest
}

var _ TestComponent = (*FixtureServer)(nil)

// NewFixtureServer creates a fixture server. Call Start before use.
func NewFixtureServer() *FixtureServer {
	s := &FixtureServer{}
	s.engine = s.newEngine()
	return s
}

// Engine returns the gin engine for registering extra routes.
func (s *FixtureServer) Engine() *gin.Engine {
	return s.engine
}

// BaseURL returns the server's base URL, or "" before Start.
func (s *FixtureServer) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ts == nil {
		return ""
	}
	return s.ts.URL
}

// URL joins path onto the base URL.
func (s *FixtureServer) URL(path string) string {
	return s.BaseURL() + path
}

// Requests returns the requests seen since Start or Reset.
func (s *FixtureServer) Requests() []RecordedRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// DownloadBody returns the body /download/:name serves for size bytes.
func DownloadBody(name string, size int) []byte {
	if name == "" {
		name = "x"
	}
	return bytes.Repeat([]byte(name), size/len(name)+1)[:size]
}

func (s *FixtureServer) Name() string { return "fixture-server" }

func (s *FixtureServer) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts != nil {
		return fmt.Errorf("component already started")
	}
	s.ts = httptest.NewServer(s.engine)
	return nil
}

func (s *FixtureServer) Stop(_ context.Context) error {
	s.mu.Lock()
	ts := s.ts
	s.ts = nil
	s.mu.Unlock()
	if ts != nil {
		ts.CloseClientConnections()
		ts.Close()
	}
	return nil
}

func (s *FixtureServer) Health(_ context.Context) component.Health {
	if s.BaseURL() == "" {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Reset clears the recorded requests.
func (s *FixtureServer) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
	return nil
}

func (s *FixtureServer) newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.record())

	r.Any("/echo", echo)
	r.GET("/status/:code", status)
	r.POST("/upload", upload)
	r.GET("/download/:name", download)
	r.GET("/slow", slow)
	r.GET("/cookie", cookie)
	r.GET("/text", func(c *gin.Context) {
		c.String(http.StatusOK, "{not json")
	})
	return r
}

// requestID injects a unique X-Request-Id header into every response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

func (s *FixtureServer) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Query:  c.Request.URL.RawQuery,
			Header: c.Request.Header.Clone(),
		})
		s.mu.Unlock()
		c.Next()
	}
}

func echo(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	query := map[string]string{}
	for k, v := range c.Request.URL.Query() {
		query[k] = v[0]
	}
	headers := map[string]string{}
	for k, v := range c.Request.Header {
		headers[k] = v[0]
	}
	c.Header("X-Echo", "1")
	c.JSON(http.StatusOK, EchoResponse{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Query:   query,
		Headers: headers,
		Body:    string(body),
	})
}

func status(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil || code < 100 || code > 599 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	c.JSON(code, gin.H{"status": code})
}

func upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp := UploadResponse{Fields: map[string]string{}}
	for k, v := range form.Value {
		resp.Fields[k] = v[0]
	}

	names := make([]string, 0, len(form.File))
	for k := range form.File {
		names = append(names, k)
	}
	sort.Strings(names)
	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file part"})
		return
	}

	fh := form.File[names[0]][0]
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer func() { _ = f.Close() }()
	content, _ := io.ReadAll(f)

	resp.Field = names[0]
	resp.Filename = fh.Filename
	resp.Size = fh.Size
	resp.Type = fh.Header.Get("Content-Type")
	resp.Content = string(content)
	c.JSON(http.StatusOK, resp)
}

func download(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", "1024"))
	if err != nil || size < 0 {
		c.String(http.StatusBadRequest, "invalid size")
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", DownloadBody(c.Param("name"), size))
}

func slow(c *gin.Context) {
	ms, err := strconv.Atoi(c.DefaultQuery("ms", "500"))
	if err != nil {
		ms = 500
	}
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
		c.String(http.StatusOK, "slow")
	case <-c.Request.Context().Done():
	}
}

func cookie(c *gin.Context) {
	c.SetCookie("session", "abc", 3600, "/", "", false, true)
	c.SetCookie("theme", "dark", 3600, "/", "", false, false)
	c.String(http.StatusOK, "ok")
}
