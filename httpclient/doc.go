// Package httpclient implements the host platform primitives over
// net/http.
//
// A Client satisfies platform.Platform. Each primitive returns a *Task
// immediately and runs the transfer on its own goroutine, bounded by a
// bulkhead of Config.MaxConcurrent slots. Results are delivered through
// the Success, Fail and Complete callbacks of the call options; failure
// messages have the form "<operation>:fail <reason>", where reason is
// "timeout" or "abort" for those conditions.
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout:     30 * time.Second,
//	    DownloadDir: os.TempDir(),
//	    Auth:        httpclient.BearerAuth("token"),
//	})
//	a := adapter.New(client)
//
// Component wraps a Client for use with a component.Registry.
package httpclient
