package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the operational counters exposed on /metrics.
type Metrics struct {
	DaysSimulated prometheus.Counter
	GameEvents    *prometheus.CounterVec
	Departures    prometheus.Counter
	RecordsSaved  prometheus.Counter
	Cash          prometheus.Gauge
	Patients      prometheus.Gauge
	LastScore     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DaysSimulated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dentaltycoon",
			Name:      "days_simulated_total",
			Help:      "Simulated days advanced across all sessions.",
		}),
		GameEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dentaltycoon",
			Name:      "game_events_fired_total",
			Help:      "Random game events fired, by event id.",
		}, []string{"event"}),
		Departures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dentaltycoon",
			Name:      "associate_departures_total",
			Help:      "Associates who quit and took patients with them.",
		}),
		RecordsSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dentaltycoon",
			Name:      "leaderboard_records_saved_total",
			Help:      "Season results written to the leaderboard.",
		}),
		Cash: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "dentaltycoon",
			Name:      "practice_cash",
			Help:      "Current practice cash position.",
		}),
		Patients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "dentaltycoon",
			Name:      "practice_patients",
			Help:      "Current patients of record.",
		}),
		LastScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "dentaltycoon",
			Name:      "last_score",
			Help:      "Most recently computed overall score (1-1000).",
		}),
	}
}
