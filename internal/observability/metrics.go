package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_generated_total",
			Help: "Generated document outcomes by type and status",
		},
		[]string{"type", "status"},
	)

	AutomationJobsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_jobs_dispatched_total",
			Help: "Automation job dispatch attempts by outcome",
		},
		[]string{"outcome"},
	)

	WebhookUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_webhook_updates_total",
			Help: "Webhook callbacks applied by reported status",
		},
		[]string{"status"},
	)
)
