// Package testutil provides lifecycle helpers for test components and a
// gin-based fixture server for exercising the HTTP platform.
//
//	func TestDownload(t *testing.T) {
//	    srv := testutil.NewFixtureServer()
//	    testutil.T(t).Setup(srv)
//	    // srv.URL("/download/a.bin?size=4096")
//	}
//
// Fixture routes:
//
//	ANY  /echo            method, query, headers and body as JSON
//	GET  /status/:code    responds with the given status
//	POST /upload          multipart summary as JSON
//	GET  /download/:name  deterministic body of ?size= bytes
//	GET  /slow            waits ?ms= milliseconds (default 500)
//	GET  /cookie          sets the session and theme cookies
//	GET  /text            a body that is not JSON
package testutil
