package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyhub",
			Name:      "calculations_total",
			Help:      "Count of calculator recomputations by calculator and outcome.",
		},
		[]string{"calculator", "outcome"},
	)

	highDoseWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studyhub",
			Name:      "high_dose_warnings_total",
			Help:      "Count of dosage results that raised the high-dose warning.",
		},
	)

	quizTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyhub",
			Name:      "quiz_transitions_total",
			Help:      "Count of quiz actions by transition and outcome.",
		},
		[]string{"transition", "outcome"},
	)

	quizScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "studyhub",
			Name:      "quiz_score_percent",
			Help:      "Final quiz scores in percent.",
			Buckets:   []float64{20, 40, 60, 80, 100},
		},
	)

	contactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyhub",
			Name:      "contact_submissions_total",
			Help:      "Count of contact form submissions by outcome.",
		},
		[]string{"outcome"},
	)

	activeVisitors prometheus.GaugeFunc
)

// Register registers metrics (idempotent). visitors is read on every scrape
// for the active_visitors gauge.
func Register(visitors func() int) {
	once.Do(func() {
		activeVisitors = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "studyhub",
				Name:      "active_visitors",
				Help:      "Visitors with live in-memory state.",
			},
			func() float64 { return float64(visitors()) },
		)
		prometheus.MustRegister(calculations, highDoseWarnings, quizTransitions, quizScores, contactSubmissions, activeVisitors)
	})
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncCalculation(calculator string, valid bool) {
	outcome := "incomplete"
	if valid {
		outcome = "valid"
	}
	calculations.WithLabelValues(calculator, outcome).Inc()
}

func IncHighDoseWarning() {
	highDoseWarnings.Inc()
}

func IncQuizTransition(transition string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "rejected"
	}
	quizTransitions.WithLabelValues(transition, outcome).Inc()
}

func ObserveQuizScore(percent float64) {
	quizScores.Observe(percent)
}

func IncContactSubmission(outcome string) {
	contactSubmissions.WithLabelValues(outcome).Inc()
}
