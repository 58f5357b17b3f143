// Package observability traces and meters adapted calls with
// OpenTelemetry and exports both over OTLP/HTTP.
//
//	res := observability.Resource{ServiceName: "wxadapter", ServiceVersion: version.Version}
//	tp, err := observability.InitTracer(ctx, res, cfg.Tracing)
//	defer tp.Shutdown(ctx)
//	mp, err := observability.InitMeter(ctx, res, cfg.Metrics)
//	defer mp.Shutdown(ctx)
//	metrics, err := observability.NewMetrics(nil)
//
// Each call is an Operation: StartOperation opens the span and counts the
// call as pending, End records its outcome and duration.
package observability
