// Package adapter runs a uniform request configuration against a host
// platform that exposes three callback-based primitives: a generic
// request, a file upload and a file download.
//
// A call is dispatched by operation kind, derived from Config.Method.
// The adapter builds the final URL, fills the platform call options for
// the kind, invokes the matching primitive and wires progress and
// headers-received listeners onto the returned handle. The first of
// platform success, platform failure or caller cancellation settles the
// call; every later callback is ignored.
//
// # Usage
//
//	a := adapter.New(client, adapter.WithLogger(log))
//	resp, err := a.Adapt(ctx, &adapter.Config{
//	    Method:  "get",
//	    BaseURL: "https://api.example.com",
//	    URL:     "/items",
//	    Params:  map[string]any{"page": 2},
//	})
//	if e, ok := adapter.AsError(err); ok && e.Response != nil {
//	    // rejected by ValidateStatus
//	}
//
// Dispatch returns a Future instead of blocking, and a CancelToken or
// context cancellation aborts the in-flight operation.
package adapter
