package adapter

import (
	"time"

	"github.com/kbukum/wxadapter/errors"
	"github.com/kbukum/wxadapter/platform"
	"github.com/kbukum/wxadapter/validation"
)

// Response types understood by the request primitive.
const (
	ResponseTypeJSON        = "json"
	ResponseTypeText        = "text"
	ResponseTypeArrayBuffer = "arraybuffer"
)

// Config describes one call. It is read-only to the adapter.
type Config struct {
	// URL is the request path or absolute URL.
	URL string `json:"url" validate:"required"`
	// BaseURL is prefixed to URL unless URL is absolute.
	BaseURL string `json:"baseURL,omitempty"`
	// Method is an HTTP verb, or "upload" / "download" to select those
	// primitives. Empty means GET.
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	// Params are appended to the URL as a query string, keys sorted.
	Params map[string]any `json:"params,omitempty"`
	Data   any            `json:"data,omitempty"`
	// ResponseType is "json" (default), "text" or "arraybuffer".
	ResponseType string `json:"responseType,omitempty" validate:"omitempty,oneof=json text arraybuffer"`
	// Timeout of 0 leaves the timeout to the platform.
	Timeout time.Duration `json:"timeout,omitempty" validate:"gte=0"`

	// Upload: local file and form field name. Download: destination path.
	FilePath string            `json:"filePath,omitempty"`
	Name     string            `json:"name,omitempty"`
	FormData map[string]string `json:"formData,omitempty"`

	// ValidateStatus decides whether a status resolves the call. Nil
	// accepts every status.
	ValidateStatus func(status int) bool `json:"-"`

	OnUploadProgress   func(platform.ProgressEvent) `json:"-"`
	OnDownloadProgress func(platform.ProgressEvent) `json:"-"`
	OnHeadersReceived  func(platform.HeadersEvent)  `json:"-"`

	CancelToken *CancelToken `json:"-" validate:"-"`
}

// Kind returns the operation kind selected by Method.
func (c *Config) Kind() Kind {
	return KindOf(c.Method)
}

// Validate checks the struct tags and the kind-specific requirements.
func (c *Config) Validate() error {
	return validation.New().
		Merge(validation.Struct(c)).
		When(c.Kind() == KindUpload, func(v *validation.Checker) {
			v.Required("filePath", c.FilePath).Required("name", c.Name)
		}).
		Err()
}

func validateConfig(c *Config) error {
	if c == nil {
		return errors.MissingField("config")
	}
	return c.Validate()
}
