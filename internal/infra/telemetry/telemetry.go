package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/grocify/account-guard/internal/infra/config"
)

// Provider represents a telemetry provider handle.
type Provider struct {
	serviceInfo *prometheus.GaugeVec
}

// Attach registers process-level metrics and returns a provider handle. HTTP
// request metrics are owned by the transport middleware; this covers the
// static service-identity gauge scrapers use to join dashboards.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	info := promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "guard",
		Name:      "service_info",
		Help:      "Static service identity labels, always 1.",
	}, []string{"service", "environment"})
	info.WithLabelValues(cfg.App.Name, cfg.App.Env).Set(1)

	return &Provider{serviceInfo: info}, nil
}
