package exporter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	ServiceName = "svod-exporter"
	MetricsPath = "/metrics"
)

// Actions accepted by Control.
var Actions = service.ControlAction[:]

// Program runs the metrics endpoint under the OS service manager.
// Start must not block, so the work happens in run.
type Program struct {
	Addr      string
	Collector *Collector

	server *http.Server
	exit   chan struct{}
	log    logrus.FieldLogger
}

func NewProgram(addr string, collector *Collector) *Program {
	return &Program{
		Addr:      addr,
		Collector: collector,
		log:       logrus.WithField("component", "exporter"),
	}
}

func (p *Program) Start(s service.Service) error {
	p.exit = make(chan struct{})
	p.server = &http.Server{
		Addr:              p.Addr,
		Handler:           p.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go p.run()
	return nil
}

// Handler serves the collector on MetricsPath from its own registry.
func (p *Program) Handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.Collector)

	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: p.log,
	}))
	return mux
}

func (p *Program) run() {
	// An initial login failure is not fatal: the collector logs in again on
	// the first auth error and reports svod_up 0 meanwhile.
	if !p.Collector.Credentials.empty() {
		ctx, cancel := context.WithTimeout(context.Background(), p.Collector.Timeout)
		if err := p.Collector.Login(ctx); err != nil {
			p.log.WithError(err).Warn("initial login failed")
		} else {
			p.log.Info("initial login successful")
		}
		cancel()
	}

	p.log.WithField("addr", p.Addr).Info("SVOD exporter listening")
	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.log.WithError(err).Error("HTTP server error")
	}
}

func (p *Program) Stop(s service.Service) error {
	p.log.Info("stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			p.log.WithError(err).Warn("server forced to shutdown")
		}
	}
	if p.exit != nil {
		close(p.exit)
	}
	return nil
}

// ServiceConfig describes the installed service. args are what the service
// manager passes back to the binary.
func ServiceConfig(args []string) *service.Config {
	return &service.Config{
		Name:        ServiceName,
		DisplayName: "SVOD Prometheus Exporter",
		Description: "Exposes SVOD command center metrics to Prometheus",
		Arguments:   args,
	}
}
