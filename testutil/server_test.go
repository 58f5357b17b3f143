package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/kbukum/wxadapter/component"
)

func TestFixtureServer_Lifecycle(t *testing.T) {
	s := NewFixtureServer()
	ctx := context.Background()

	if s.BaseURL() != "" {
		t.Error("BaseURL() should be empty before Start")
	}
	if h := s.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before Start, got %s", h.Status)
	}

	cleanup, err := Setup(ctx, s)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	if s.BaseURL() == "" {
		t.Error("BaseURL() should not be empty after Start")
	}
	if err := s.Start(ctx); err == nil {
		t.Error("expected error on double Start")
	}
	if h := s.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s", h.Status)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup() failed: %v", err)
	}
	if s.BaseURL() != "" {
		t.Error("BaseURL() should be empty after Stop")
	}
}

func TestFixtureServer_Echo(t *testing.T) {
	s := NewFixtureServer()
	T(t).Setup(s)

	req, _ := http.NewRequest(http.MethodPut, s.URL("/echo?a=1"), strings.NewReader("hello"))
	req.Header.Set("X-Test", "yes")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var echo EchoResponse
	if err := json.NewDecoder(resp.Body).Decode(&echo); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if echo.Method != http.MethodPut || echo.Body != "hello" || echo.Query["a"] != "1" || echo.Headers["X-Test"] != "yes" {
		t.Errorf("unexpected echo: %+v", echo)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}

	reqs := s.Requests()
	if len(reqs) != 1 || reqs[0].Path != "/echo" || reqs[0].Query != "a=1" {
		t.Errorf("unexpected recorded requests: %+v", reqs)
	}
	T(t).Reset(s)
	if len(s.Requests()) != 0 {
		t.Error("expected Reset to clear recorded requests")
	}
}

func TestFixtureServer_Status(t *testing.T) {
	s := NewFixtureServer()
	T(t).Setup(s)

	for _, code := range []int{200, 404, 503} {
		resp, err := http.Get(s.URL("/status/" + strconv.Itoa(code)))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != code {
			t.Errorf("expected %d, got %d", code, resp.StatusCode)
		}
	}
}

func TestFixtureServer_Upload(t *testing.T) {
	s := NewFixtureServer()
	T(t).Setup(s)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("k", "v")
	part, _ := w.CreateFormFile("file", "a.txt")
	_, _ = part.Write([]byte("content"))
	_ = w.Close()

	resp, err := http.Post(s.URL("/upload"), w.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var up UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&up); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if up.Field != "file" || up.Filename != "a.txt" || up.Size != 7 || up.Fields["k"] != "v" || up.Content != "content" {
		t.Errorf("unexpected upload summary: %+v", up)
	}
}

func TestFixtureServer_Download(t *testing.T) {
	s := NewFixtureServer()
	T(t).Setup(s)

	resp, err := http.Get(s.URL("/download/ab?size=5"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ababa" {
		t.Errorf("expected 'ababa', got %q", body)
	}
	if resp.ContentLength != 5 {
		t.Errorf("expected content length 5, got %d", resp.ContentLength)
	}
}

func TestFixtureServer_Cookie(t *testing.T) {
	s := NewFixtureServer()
	T(t).Setup(s)

	resp, err := http.Get(s.URL("/cookie"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if n := len(resp.Header.Values("Set-Cookie")); n != 2 {
		t.Errorf("expected 2 cookies, got %d", n)
	}
}
