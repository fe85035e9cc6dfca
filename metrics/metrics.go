package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var CommandCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "peacebot_commands_total",
	Help: "Number of application commands handled",
}, []string{"command"})

var CommandErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "peacebot_command_errors_total",
	Help: "Number of application commands that failed with an internal error",
}, []string{"command"})

var CommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "peacebot_command_duration_seconds",
	Help:    "Time spent handling application commands",
	Buckets: prometheus.DefBuckets,
}, []string{"command"})

var AutoResponseFired = promauto.NewCounter(prometheus.CounterOpts{
	Name: "peacebot_autoresponses_fired_total",
	Help: "Number of messages answered by an auto-response",
})

var MatcherErrorCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "peacebot_matcher_errors_total",
	Help: "Number of messages the auto-response matcher failed to evaluate",
})

var CasesRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "peacebot_cases_registered_total",
	Help: "Number of moderation cases appended to the ledger",
}, []string{"type"})
