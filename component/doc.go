// Package component defines lifecycle-managed services and a registry that
// starts them in order and stops them in reverse.
//
// The HTTP platform (httpclient.Component) and the test fixture server
// (testutil.FixtureServer) are both components:
//
//	reg := component.NewRegistry(log)
//	_ = reg.Register(httpclient.NewComponent(cfg))
//	if err := reg.StartAll(ctx); err != nil { ... }
//	defer reg.StopAll(context.Background())
package component
