package platform

import "time"

// Platform exposes the three host network primitives.
type Platform interface {
	// Request performs a generic HTTP request.
	Request(opts *Options) Handle
	// UploadFile uploads a local file as multipart form data.
	UploadFile(opts *Options) Handle
	// DownloadFile downloads a resource into a local file.
	DownloadFile(opts *Options) Handle
}

// Handle is the in-flight operation returned by a primitive.
type Handle interface {
	// Abort cancels the operation. Callback delivery after Abort is not
	// guaranteed to be suppressed.
	Abort()

	OnProgressUpdate(l *Listener[ProgressEvent])
	OffProgressUpdate(l *Listener[ProgressEvent])

	OnHeadersReceived(l *Listener[HeadersEvent])
	OffHeadersReceived(l *Listener[HeadersEvent])
}

// Options are the call options handed to a primitive. Which fields are
// read depends on the primitive.
type Options struct {
	URL    string
	Header map[string]string
	// Timeout of 0 means the platform default.
	Timeout time.Duration

	// Request only.
	Method       string
	Data         any
	DataType     string
	ResponseType string

	// Upload: the local file to send. Download: the destination path.
	FilePath string
	// Upload only.
	Name     string
	FormData map[string]string

	Success  func(res *Result)
	Fail     func(f *Failure)
	Complete func()
}

// Result is the raw success payload of a primitive.
type Result struct {
	StatusCode int
	// Data is the response body: a string, []byte or decoded JSON for
	// requests, the body string for uploads, nil for downloads.
	Data    any
	Header  map[string]string
	Cookies []string
	ErrMsg  string

	// Download only.
	FilePath     string
	TempFilePath string
}

// Failure is the raw fail payload of a primitive.
type Failure struct {
	ErrMsg string
	ErrNo  int
}

// ProgressEvent reports upload or download progress.
type ProgressEvent struct {
	// Progress is a percentage in [0, 100].
	Progress int
	// TotalBytes is the number of bytes sent or written so far.
	TotalBytes int64
	// ExpectedBytes is the expected total, or -1 when unknown.
	ExpectedBytes int64
}

// HeadersEvent is delivered when response headers arrive.
type HeadersEvent struct {
	StatusCode int
	Header     map[string]string
}
