// Package platform describes the host platform the adapter runs against.
//
// The host exposes three callback-based primitives, one per operation
// kind: a generic request, a file upload and a file download. Each takes
// an Options value carrying success, fail and complete callbacks and
// returns a Handle for the in-flight operation.
//
// Package httpclient provides a net/http backed implementation. Package
// platform/platformtest provides a scriptable fake for tests.
package platform
