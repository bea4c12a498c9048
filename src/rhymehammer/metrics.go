package rhymehammer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhymehammer_lookups_total",
		Help: "Word-relation queries sent upstream, by category.",
	}, []string{"category"})

	lookupErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhymehammer_lookup_errors_total",
		Help: "Word-relation queries that failed, by category.",
	}, []string{"category"})

	rhymeStrength = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rhymehammer_rhyme_strength",
		Help:    "Rhyme strength assigned to candidates, by category.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"category"})

	commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhymehammer_commands_total",
		Help: "Discord commands handled, by command.",
	}, []string{"command"})

	lineRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhymehammer_line_requests_total",
		Help: "AI line generation and analysis requests, by outcome.",
	}, []string{"outcome"})
)
