package internal

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afancontrol/afancontrol/internal/configuration"
	"github.com/afancontrol/afancontrol/internal/controller"
	"github.com/afancontrol/afancontrol/internal/report"
	"github.com/afancontrol/afancontrol/internal/statistics"
	"github.com/afancontrol/afancontrol/internal/trigger"
	"github.com/afancontrol/afancontrol/internal/ui"
)

// RunDaemon runs the control loop and the optional metrics exporter until a
// termination signal arrives.
func RunDaemon(config *configuration.ParsedConfig) error {
	if config.Daemon.LogFile != nil {
		if err := ui.SetLogFile(*config.Daemon.LogFile); err != nil {
			return err
		}
	}

	if config.Daemon.PidFile != nil {
		pidFile := *config.Daemon.PidFile
		if err := writePidFile(pidFile); err != nil {
			return err
		}
		defer func() {
			_ = os.Remove(pidFile)
		}()
	}

	reporter := report.NewReporter(config.ReportCmd)
	trig := trigger.New(config.Triggers, reporter)
	ctrl := controller.New(config, trig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			return ctrl.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	if config.Daemon.ExporterListenHost != nil {
		// === Prometheus exporter
		statistics.Register(statistics.NewTempCollector(ctrl))
		statistics.Register(statistics.NewFanCollector(ctrl))
		statistics.Register(statistics.NewDaemonCollector(ctrl))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: *config.Daemon.ExporterListenHost, Handler: mux}

		g.Add(func() error {
			ui.Info("Serving metrics on http://%s/metrics", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer timeoutCancel()
			if err := server.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping the metrics exporter: %v", err)
			}
		})
	}
	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))

	err := g.Run()
	var signalErr run.SignalError
	if errors.As(err, &signalErr) {
		ui.Info("Received %s, exiting...", signalErr.Signal)
		return nil
	}
	return err
}

func writePidFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}
