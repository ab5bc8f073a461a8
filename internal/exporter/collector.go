// Package exporter exposes command center counters to Prometheus.
package exporter

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/MrJinPro/SVOD/internal/auth"
	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/pkg/models"
)

const namespace = "svod"

// Credentials are used to log in again when the API rejects the token.
// Empty credentials disable re-login.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) empty() bool {
	return c.Username == "" || c.Password == ""
}

var (
	upDesc = prometheus.NewDesc(
		namespace+"_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		namespace+"_scrape_duration_seconds", "Time taken to scrape the API.", nil, nil,
	)
	eventsTodayDesc = prometheus.NewDesc(
		namespace+"_events_today", "Events registered today.", nil, nil,
	)
	criticalTodayDesc = prometheus.NewDesc(
		namespace+"_critical_events_today", "Critical events registered today.", nil, nil,
	)
	activeObjectsDesc = prometheus.NewDesc(
		namespace+"_active_objects", "Objects under monitoring.", nil, nil,
	)
	reportsDesc = prometheus.NewDesc(
		namespace+"_reports_generated", "Reports generated.", nil, nil,
	)
	trendDesc = prometheus.NewDesc(
		namespace+"_events_trend_percent", "Change of today's event count against yesterday.", nil, nil,
	)
	eventsByTypeDesc = prometheus.NewDesc(
		namespace+"_events_by_type", "Events over the last 24 hours grouped by type.", []string{"type"}, nil,
	)
	eventsBySeverityDesc = prometheus.NewDesc(
		namespace+"_events_by_severity", "Events in the journal grouped by severity and status.", []string{"severity", "status"}, nil,
	)
	unreadDesc = prometheus.NewDesc(
		namespace+"_notifications_unread", "Notifications not yet read by the exporter account.", nil, nil,
	)
)

// Collector scrapes the API on every Prometheus collection.
type Collector struct {
	Client      *client.SvodClient
	Tokens      auth.TokenStore
	Credentials Credentials
	Timeout     time.Duration

	mu  sync.Mutex
	log logrus.FieldLogger
}

func NewCollector(c *client.SvodClient, tokens auth.TokenStore, creds Credentials) *Collector {
	return &Collector{
		Client:      c,
		Tokens:      tokens,
		Credentials: creds,
		Timeout:     30 * time.Second,
		log:         logrus.WithField("component", "exporter"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- eventsTodayDesc
	ch <- criticalTodayDesc
	ch <- activeObjectsDesc
	ch <- reportsDesc
	ch <- trendDesc
	ch <- eventsByTypeDesc
	ch <- eventsBySeverityDesc
	ch <- unreadDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	start := time.Now()
	success := 1.0

	// 1. Headline counters
	if stats, err := withRelogin(ctx, c, c.Client.GetDashboardStats); err == nil {
		ch <- prometheus.MustNewConstMetric(eventsTodayDesc, prometheus.GaugeValue, float64(stats.TotalEvents))
		ch <- prometheus.MustNewConstMetric(criticalTodayDesc, prometheus.GaugeValue, float64(stats.CriticalEvents))
		ch <- prometheus.MustNewConstMetric(activeObjectsDesc, prometheus.GaugeValue, float64(stats.ActiveObjects))
		ch <- prometheus.MustNewConstMetric(reportsDesc, prometheus.GaugeValue, float64(stats.ReportsGenerated))
		ch <- prometheus.MustNewConstMetric(trendDesc, prometheus.GaugeValue, stats.EventsTrend)
	} else {
		success = 0.0
		c.log.WithError(err).Warn("error scraping dashboard stats")
	}

	// 2. Type distribution
	if slices, err := withRelogin(ctx, c, c.Client.GetTypeDistribution); err == nil {
		for _, s := range slices {
			ch <- prometheus.MustNewConstMetric(eventsByTypeDesc, prometheus.GaugeValue, float64(s.Value), s.Name)
		}
	} else {
		success = 0.0
		c.log.WithError(err).Warn("error scraping type distribution")
	}

	// 3. Journal totals per severity for active events
	for _, sev := range models.Severities {
		total, err := withRelogin(ctx, c, func(ctx context.Context) (int, error) {
			return c.countEvents(ctx, sev, models.StatusActive)
		})
		if err != nil {
			success = 0.0
			c.log.WithError(err).WithField("severity", sev).Warn("error scraping events")
			break
		}
		ch <- prometheus.MustNewConstMetric(eventsBySeverityDesc, prometheus.GaugeValue, float64(total), string(sev), string(models.StatusActive))
	}

	// 4. Notifications
	if items, err := withRelogin(ctx, c, c.Client.GetNotifications); err == nil {
		ch <- prometheus.MustNewConstMetric(unreadDesc, prometheus.GaugeValue, float64(models.UnreadCount(items)))
	} else {
		success = 0.0
		c.log.WithError(err).Warn("error scraping notifications")
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// countEvents asks for a one-row page and reads the total.
func (c *Collector) countEvents(ctx context.Context, sev models.EventSeverity, status models.EventStatus) (int, error) {
	path := client.WithQuery(client.PathEvents, url.Values{
		"page":     {"1"},
		"pageSize": {"1"},
		"severity": {string(sev)},
		"status":   {string(status)},
	})
	page, err := c.Client.ListEvents(ctx, path)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

// Login obtains a fresh token for the exporter account.
func (c *Collector) Login(ctx context.Context) error {
	res, err := c.Client.Login(ctx, c.Credentials.Username, c.Credentials.Password)
	if err != nil {
		return err
	}
	c.Tokens.Set(res.AccessToken)
	return nil
}

// withRelogin retries fetch once after a fresh login when the API answers
// 401/403.
func withRelogin[T any](ctx context.Context, c *Collector, fetch func(context.Context) (T, error)) (T, error) {
	res, err := fetch(ctx)
	if err == nil {
		return res, nil
	}
	if client.IsAuthError(err) && !c.Credentials.empty() {
		if lerr := c.Login(ctx); lerr == nil {
			c.log.Info("re-authenticated after auth error")
			return fetch(ctx)
		}
	}
	return res, err
}
