package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"ecotronix-hub/cmd/config"
	"ecotronix-hub/cmd/hub/wire"
	"ecotronix-hub/internal/control_plane/httpapi"
	"ecotronix-hub/internal/control_plane/persistence"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/data_plane/workers"
	"ecotronix-hub/internal/infra/async"
	"ecotronix-hub/internal/infra/httpserver"
	"ecotronix-hub/internal/infra/mqtt"
	"ecotronix-hub/internal/infra/node"
	"ecotronix-hub/internal/infra/process"
	"ecotronix-hub/internal/logger"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap/zapcore"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func main() {
	pflag.String(config.ConfigFileKey, "", "path to the hub configuration file")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	config := config.LoadConfig()

	level := logLevelMapping[config.General.LogLevel]
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	handler := baseHandler.WithAttrs([]slog.Attr{slog.String("version", node.Version)})
	slog.SetDefault(slog.New(handler))
	slog.Info("🏠 ecotronix hub is initializing")
	slog.Debug("config loaded", "data", config)

	paho.ERROR = logger.NewPrintLogger("mqtt", zapcore.ErrorLevel)
	paho.CRITICAL = logger.NewPrintLogger("mqtt", zapcore.ErrorLevel)
	paho.WARN = logger.NewPrintLogger("mqtt", zapcore.WarnLevel)

	shutdownOtel := ShutdownFunc(func() error { return nil })
	if config.General.OTelEnabled {
		shutdownOtel = startOTel(config.General.OTelEndpoint)
	}

	internalBroker := async.NewLocalBroker()

	mqttClient, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
		Broker:   config.MQTTClient.Broker,
		ClientID: node.ClientID(config.MQTTClient.ClientID),
		Username: config.MQTTClient.Username,
		Password: config.MQTTClient.Password, //pragma: allowlist secret
	})
	if err != nil {
		slog.Error("failed to connect to mqtt broker", slog.Any("error", err))
		os.Exit(1)
	}

	catalog := handleWireInjector(wire.InitializeHomeCatalog()).(*persistence.HomeCatalog)
	for _, warning := range catalog.Warnings() {
		slog.Warn("home catalog", slog.String("warning", warning))
	}

	runner := process.NewExecRunner()
	publisher := handleWireInjector(wire.InitializeDevicePublisher(mqttClient)).(usecases.DevicePublisher)
	orchestrator := handleWireInjector(wire.InitializeDispatchOrchestrator(internalBroker, catalog, publisher, runner)).(*usecases.DispatchOrchestrator)
	telemetryStore := handleWireInjector(wire.InitializeTelemetryStore()).(usecases.TelemetryStore)
	eventsController := handleWireInjector(wire.InitializeDispatchEventsWebSocketController(internalBroker)).(*httpapi.DispatchEventsWebSocketController)

	httpServer := httpserver.NewServer(
		httpserver.ServerOpts{
			Address:        config.HTTP.Address,
			AllowedOrigins: config.HTTP.AllowedOrigins,
		},
		handleWireInjector(wire.InitializeIntakeController(internalBroker)).(httpserver.Controller),
		handleWireInjector(wire.InitializeStatusController(orchestrator, telemetryStore)).(httpserver.Controller),
		eventsController,
	)

	appCtx, cancelFn := context.WithCancel(context.Background())
	fatal := make(chan error, 2)
	go func() {
		if err := httpServer.Run(); err != nil {
			fatal <- err
		}
	}()

	runningWorkers := []async.Worker{
		orchestrator,
		handleWireInjector(wire.InitializeTelemetryIntegrationWorker(catalog, mqttClient, telemetryStore, internalBroker)).(async.Worker),
		handleWireInjector(wire.InitializeTelemetryPollWorker(publisher)).(async.Worker),
	}
	if config.Catalog.Watch {
		runningWorkers = append(runningWorkers, catalog)
	}
	if config.Speech.Enabled {
		runningWorkers = append(runningWorkers, workers.NewSensingWorker(workers.SpeechSource, config.Speech.Command, internalBroker, fatal))
	}
	if config.Identity.Enabled {
		runningWorkers = append(runningWorkers, workers.NewSensingWorker(workers.IdentitySource, config.Identity.Command, internalBroker, fatal))
	}

	var wg sync.WaitGroup
	for _, worker := range runningWorkers {
		wg.Add(1)
		go worker.Run(appCtx, wg.Done)
	}

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-signalChannel:
		slog.Info("signal received", slog.String("signal", sig.String()))
	case err := <-fatal:
		slog.Error("fatal error, shutting down", slog.Any("error", err))
		exitCode = 1
	}

	cancelFn()
	httpServer.Shutdown()
	eventsController.Shutdown()
	wg.Wait()
	for _, worker := range runningWorkers {
		worker.Shutdown()
	}
	if !runner.Wait(_childrenGracePeriod) {
		slog.Warn("detached processes still running at exit", slog.Duration("grace_period", _childrenGracePeriod))
	}
	internalBroker.Stop()
	mqttClient.Disconnect()
	if err := shutdownOtel(); err != nil {
		slog.Error("failed to shutdown otel", slog.Any("error", err))
	}

	slog.Info("good bye!!!")
	os.Exit(exitCode)
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

type ShutdownFunc func() error

const (
	_serviceName         = "ecotronix-hub"
	_collectPeriod       = 30 * time.Second
	_collectTimeout      = 35 * time.Second
	_minimumInterval     = time.Minute
	_childrenGracePeriod = 5 * time.Second
)

var (
	_histogramBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}
)

func startOTel(endpoint string) ShutdownFunc {
	slog.Info("starting OTel providers", slog.String("endpoint", endpoint))
	shutdown, err := otelStart(context.Background(), endpoint)
	if err != nil {
		panic(err)
	}

	return shutdown
}

func otelStart(ctx context.Context, endpoint string) (ShutdownFunc, error) {
	metricsShutdownFunc, err := startMetricsProvider(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	traceShutdownFunc, err := startTraceProvider(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return func() error {
		if err := metricsShutdownFunc(); err != nil {
			return err
		}
		if err := traceShutdownFunc(); err != nil {
			return err
		}
		return nil
	}, nil
}

func startTraceProvider(ctx context.Context, endpoint string) (ShutdownFunc, error) {
	exp, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(_serviceName),
		)),
	)
	otel.SetTracerProvider(tp)

	return func() error {
		return tp.Shutdown(ctx)
	}, nil
}

func startMetricsProvider(ctx context.Context, endpoint string) (ShutdownFunc, error) {
	exp, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	mp := newMeterProvider(exp)
	otel.SetMeterProvider(mp)

	err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval))
	if err != nil {
		return nil, err
	}

	return func() error {
		return mp.Shutdown(ctx)
	}, nil
}

func newMeterProvider(metricExporter metric.Exporter) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithReader(
			metric.NewPeriodicReader(
				metricExporter,
				metric.WithTimeout(_collectTimeout),
				metric.WithInterval(_collectPeriod))),
		metric.WithView(metric.NewView(
			metric.Instrument{
				Name: "*",
				Kind: metric.InstrumentKindHistogram,
			},
			metric.Stream{
				Aggregation: metric.AggregationExplicitBucketHistogram{
					Boundaries: _histogramBuckets,
				},
			},
		)),
	)
}

func handleWireInjector(value any, err error) any {
	if err != nil {
		panic(err)
	}

	return value
}
