package httpclient

import (
	"context"
	"crypto/tls"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/wxadapter/logger"
)

func writeServerCA(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestTLSConfig_Build(t *testing.T) {
	var nilCfg *TLSConfig
	if cfg, err := nilCfg.build(); cfg != nil || err != nil {
		t.Errorf("expected nil config for nil settings, got %v %v", cfg, err)
	}
	if cfg, err := (&TLSConfig{}).build(); cfg != nil || err != nil {
		t.Errorf("expected nil config for zero settings, got %v %v", cfg, err)
	}

	cfg, err := (&TLSConfig{ServerName: "api.local", MinVersion: "1.3"}).build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.ServerName != "api.local" || cfg.MinVersion != tls.VersionTLS13 {
		t.Errorf("unexpected tls config: %+v", cfg)
	}
}

func TestTLSConfig_BuildErrors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.pem")
	if err := os.WriteFile(bad, []byte("not pem"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := map[string]*TLSConfig{
		"missing ca":  {CAFile: filepath.Join(t.TempDir(), "none.pem")},
		"invalid ca":  {CAFile: bad},
		"invalid key": {CertFile: bad, KeyFile: bad},
	}
	for name, cfg := range tests {
		if _, err := cfg.build(); err == nil {
			t.Errorf("%s: expected build error", name)
		}
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	if err := (&TLSConfig{MinVersion: "1.1"}).Validate(); err == nil {
		t.Error("expected error for tls 1.1")
	}
	if err := (&TLSConfig{KeyFile: "k.pem"}).Validate(); err == nil {
		t.Error("expected error for key without cert")
	}
	if err := (&TLSConfig{CertFile: "c.pem", KeyFile: "k.pem", MinVersion: "1.2"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequest_TLSWithCustomCA(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("secure"))
	}))
	defer srv.Close()

	untrusted := newTestClient(t, Config{})
	o := newOutcome()
	untrusted.Request(o.options(srv.URL))
	o.wait(t)
	if o.fail == nil || !strings.HasPrefix(o.fail.ErrMsg, "request:fail ") {
		t.Fatalf("expected certificate failure without the CA, got %+v", o.fail)
	}

	c, err := New(Config{TLS: &TLSConfig{CAFile: writeServerCA(t, srv)}}, WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close(context.Background()) }()

	o = newOutcome()
	c.Request(o.options(srv.URL))
	o.wait(t)
	if o.fail != nil {
		t.Fatalf("unexpected failure: %+v", o.fail)
	}
	if o.res.Data != "secure" {
		t.Errorf("expected secure, got %v", o.res.Data)
	}
}
