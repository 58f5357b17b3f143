package adapter

import "strings"

// Kind selects the platform primitive and the lifecycle handlers of a call.
type Kind int

const (
	// KindRequest is a generic HTTP request.
	KindRequest Kind = iota
	// KindUpload is a multipart file upload.
	KindUpload
	// KindDownload is a file download.
	KindDownload
)

// KindOf derives the kind from a configured method. "upload" and
// "download" (any case) select those kinds; anything else is a request.
func KindOf(method string) Kind {
	switch strings.ToLower(method) {
	case "upload":
		return KindUpload
	case "download":
		return KindDownload
	default:
		return KindRequest
	}
}

func (k Kind) String() string {
	switch k {
	case KindUpload:
		return "upload"
	case KindDownload:
		return "download"
	default:
		return "request"
	}
}
