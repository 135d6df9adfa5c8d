package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// AdsCreated counts listings created, by initial status.
	AdsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classifieds_ads_created_total",
		Help: "Total number of listings created",
	}, []string{"status"})

	// AdsDeleted counts listings removed by their owners.
	AdsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classifieds_ads_deleted_total",
		Help: "Total number of listings deleted",
	})

	// FavoriteToggles counts favorite toggles by resulting state.
	FavoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classifieds_favorite_toggles_total",
		Help: "Total number of favorite toggles by resulting state",
	}, []string{"state"})

	// AuthAttempts counts registration and login attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classifieds_auth_attempts_total",
		Help: "Total number of authentication attempts",
	}, []string{"action", "outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "classifieds_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

const queryStartKey = "observability:query_start"

// RegisterDBMetrics installs GORM callbacks that feed DatabaseQueryLatency.
func RegisterDBMetrics(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op     string
		before func(name string, fn func(*gorm.DB)) error
		after  func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		op := h.op
		if err := h.before("metrics:before_"+op, startTimer); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+op, observe(op)); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func observe(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
	}
}
