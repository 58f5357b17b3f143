// Command wxadapter runs one adapted call against the HTTP platform and
// prints the normalized response as JSON.
//
//	wxadapter -url https://api.example.com/users -param page=2
//	wxadapter -method upload -url /upload -base https://api.example.com -file photo.png -name image
//	wxadapter -method download -url https://example.com/a.zip -file ./a.zip
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/kbukum/wxadapter/adapter"
	"github.com/kbukum/wxadapter/component"
	"github.com/kbukum/wxadapter/errors"
	"github.com/kbukum/wxadapter/httpclient"
	"github.com/kbukum/wxadapter/logger"
	"github.com/kbukum/wxadapter/observability"
	"github.com/kbukum/wxadapter/platform"
	"github.com/kbukum/wxadapter/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	configFile := flags.String("config", "", "Path to config.yml")
	method := flags.String("method", "", "HTTP verb, or upload / download")
	target := flags.String("url", "", "Request URL or path")
	base := flags.String("base", "", "Base URL for relative paths")
	data := flags.String("data", "", "Request body; JSON values are sent as JSON")
	file := flags.String("file", "", "Upload source or download destination")
	field := flags.String("name", "file", "Upload form field name")
	responseType := flags.String("response-type", "", "json, text or arraybuffer")
	timeout := flags.Duration("timeout", 0, "Call timeout; 0 uses the platform default")
	token := flags.String("token", "", "Bearer access token")
	showVersion := flags.Bool("version", false, "Print version and exit")
	params, headers, form := pairs{}, pairs{}, pairs{}
	flags.Var(params, "param", "Query parameter key=value (repeatable)")
	flags.Var(headers, "header", "Request header key=value (repeatable)")
	flags.Var(form, "form", "Upload form field key=value (repeatable)")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		_, err := fmt.Fprintln(stdout, version.Get())
		return err
	}
	if *target == "" {
		return errors.MissingField("url")
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	log := logger.Init(cfg.Logging)

	metrics, shutdown, err := initTelemetry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer shutdown()

	if *token != "" {
		cfg.Platform.Auth = httpclient.OAuth2Auth(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: *token,
			TokenType:   "Bearer",
		}))
	}

	platformComponent := httpclient.NewComponent(cfg.Platform, httpclient.WithLogger(log))
	registry := component.NewRegistry(log)
	if err := registry.Register(platformComponent); err != nil {
		return err
	}
	if err := registry.StartAll(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
		defer cancel()
		if err := registry.StopAll(stopCtx); err != nil {
			log.Error("shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}()
	for _, d := range registry.Describe() {
		log.Debug("component ready", logger.Fields("name", d.Name, "type", d.Type, "details", d.Details))
	}

	opts := []adapter.Option{adapter.WithLogger(log), adapter.WithServiceName(cfg.Name)}
	if metrics != nil {
		opts = append(opts, adapter.WithMetrics(metrics))
	}
	a := adapter.New(platformComponent.Client(), opts...)

	cancelToken, cancelCall := adapter.NewCancelToken()
	stop := context.AfterFunc(ctx, func() { cancelCall("interrupted") })
	defer stop()

	progress := func(ev platform.ProgressEvent) {
		log.Debug("progress", logger.Fields("percent", ev.Progress, "bytes", ev.TotalBytes, "expected", ev.ExpectedBytes))
	}
	call := &adapter.Config{
		URL:                *target,
		BaseURL:            *base,
		Method:             *method,
		Headers:            headers.orNil(),
		Params:             params.params(),
		Data:               parseData(*data),
		ResponseType:       *responseType,
		Timeout:            *timeout,
		FilePath:           *file,
		Name:               *field,
		FormData:           form.orNil(),
		OnUploadProgress:   progress,
		OnDownloadProgress: progress,
		CancelToken:        cancelToken,
	}

	resp, err := a.Adapt(context.WithoutCancel(ctx), call)
	if err != nil {
		if e, ok := adapter.AsError(err); ok && e.Response != nil {
			_ = printJSON(stdout, e.Response)
		}
		return err
	}
	return printJSON(stdout, resp)
}

// initTelemetry starts the OTLP exporters enabled in cfg. Metrics are nil
// when metric export is off.
func initTelemetry(ctx context.Context, cfg *appConfig, log *logger.Logger) (*observability.Metrics, func(), error) {
	var closers []func(context.Context) error
	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		for _, c := range closers {
			if err := c(sctx); err != nil {
				log.Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
			}
		}
	}

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.resource(), cfg.Tracing)
		if err != nil {
			return nil, shutdown, fmt.Errorf("init tracer: %w", err)
		}
		closers = append(closers, tp.Shutdown)
	}
	if !cfg.Metrics.Enabled {
		return nil, shutdown, nil
	}

	mp, err := observability.InitMeter(ctx, cfg.resource(), cfg.Metrics)
	if err != nil {
		shutdown()
		return nil, func() {}, fmt.Errorf("init meter: %w", err)
	}
	closers = append(closers, mp.Shutdown)
	metrics, err := observability.NewMetrics(nil)
	if err != nil {
		shutdown()
		return nil, func() {}, err
	}
	return metrics, shutdown, nil
}

// parseData sends valid JSON as decoded JSON and anything else as text.
func parseData(s string) any {
	if s == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
