package adapter

import (
	"fmt"

	"github.com/kbukum/wxadapter/errors"
	"github.com/kbukum/wxadapter/platform"
)

// Response is the normalized success payload of a call.
type Response struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Headers    map[string]string `json:"headers"`
	// Cookies is never nil.
	Cookies []string `json:"cookies"`
	// Data is the response body for requests and uploads, and a
	// DownloadData for downloads.
	Data any `json:"data"`

	Config  *Config         `json:"-"`
	Request platform.Handle `json:"-"`
}

// DownloadData is the Data of a download response.
type DownloadData struct {
	FilePath     string `json:"filePath,omitempty"`
	TempFilePath string `json:"tempFilePath,omitempty"`
}

func newResponse(kind Kind, res *platform.Result, cfg *Config, h platform.Handle) *Response {
	headers := res.Header
	if headers == nil {
		headers = map[string]string{}
	}
	cookies := res.Cookies
	if cookies == nil {
		cookies = []string{}
	}
	resp := &Response{
		Status:     res.StatusCode,
		StatusText: res.ErrMsg,
		Headers:    headers,
		Cookies:    cookies,
		Config:     cfg,
		Request:    h,
	}
	onSuccess(kind, res, resp)
	return resp
}

// settle resolves f with resp unless the config's ValidateStatus
// rejects the status. It returns the rejection, if any.
func settle(f *Future, resp *Response) error {
	validate := resp.Config.ValidateStatus
	if validate == nil || validate(resp.Status) {
		f.resolve(resp)
		return nil
	}
	code := errors.ErrCodeBadResponse
	if resp.Status >= 400 && resp.Status < 500 {
		code = errors.ErrCodeBadRequest
	}
	err := createError(
		fmt.Sprintf("Request failed with status code %d", resp.Status),
		resp.Config, code, resp.Request, resp,
	)
	f.reject(err)
	return err
}
