package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "site_signups_total",
			Help: "Total number of waitlist signups",
		},
	)

	VisitsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "site_visits_recorded_total",
			Help: "Total number of visits recorded by this process",
		},
	)

	NewsPostsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "site_news_posts_total",
			Help: "Total number of news posts published",
		},
	)

	AdminAuthFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_admin_auth_failures_total",
			Help: "Total number of rejected admin secrets",
		},
		[]string{"operation"},
	)
)
