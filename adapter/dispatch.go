package adapter

import (
	"strings"

	"github.com/kbukum/wxadapter/platform"
)

// beforeSend fills the kind-specific call options. Each kind has exactly
// one handler.
func beforeSend(kind Kind, opts *platform.Options, cfg *Config) {
	switch kind {
	case KindUpload:
		opts.FilePath = cfg.FilePath
		opts.Name = cfg.Name
		opts.FormData = cfg.FormData
		if opts.FormData == nil {
			opts.FormData = map[string]string{}
		}
	case KindDownload:
		if cfg.FilePath != "" {
			opts.FilePath = cfg.FilePath
		}
	default:
		opts.Data = cfg.Data
		opts.Method = strings.ToUpper(cfg.Method)
		if opts.Method == "" {
			opts.Method = "GET"
		}
		opts.DataType = cfg.ResponseType
		if opts.DataType == "" {
			opts.DataType = ResponseTypeJSON
		}
		opts.ResponseType = ResponseTypeText
		if cfg.ResponseType == ResponseTypeArrayBuffer {
			opts.ResponseType = ResponseTypeArrayBuffer
		}
	}
}

// listeners are the references attached to a handle by afterSend. The
// same references are detached by onComplete.
type listeners struct {
	progress *platform.Listener[platform.ProgressEvent]
	headers  *platform.Listener[platform.HeadersEvent]
}

// afterSend attaches the kind's progress listener, then the
// headers-received listener shared by every kind.
func afterSend(kind Kind, h platform.Handle, cfg *Config) *listeners {
	ls := &listeners{}
	switch kind {
	case KindUpload:
		ls.progress = platform.NewListener(cfg.OnUploadProgress)
	case KindDownload:
		ls.progress = platform.NewListener(cfg.OnDownloadProgress)
	}
	if ls.progress != nil {
		h.OnProgressUpdate(ls.progress)
	}

	ls.headers = platform.NewListener(cfg.OnHeadersReceived)
	if ls.headers != nil {
		h.OnHeadersReceived(ls.headers)
	}
	return ls
}

// onComplete detaches what afterSend attached, in the same order.
func onComplete(h platform.Handle, ls *listeners) {
	if ls == nil {
		return
	}
	if ls.progress != nil {
		h.OffProgressUpdate(ls.progress)
	}
	if ls.headers != nil {
		h.OffHeadersReceived(ls.headers)
	}
}

// onSuccess sets the kind-specific response payload.
func onSuccess(kind Kind, res *platform.Result, resp *Response) {
	switch kind {
	case KindDownload:
		resp.Data = DownloadData{
			FilePath:     res.FilePath,
			TempFilePath: res.TempFilePath,
		}
	default:
		resp.Data = res.Data
	}
}

// primitive returns the platform operation that serves kind.
func primitive(p platform.Platform, kind Kind) func(*platform.Options) platform.Handle {
	switch kind {
	case KindUpload:
		return p.UploadFile
	case KindDownload:
		return p.DownloadFile
	default:
		return p.Request
	}
}
