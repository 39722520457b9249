// Package metrics defines the Prometheus collectors exported by the bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "grace"

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Metrics groups the bot's collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Reactions       *prometheus.CounterVec
	PunReplies      prometheus.Counter
	MissingTriggers *prometheus.CounterVec
	Commands        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Reactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reactions_total",
			Help:      "Reactions added to messages, by detector and emoji kind.",
		}, []string{"detector", "kind"}),
		PunReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pun_replies_total",
			Help:      "Pun replies sent.",
		}),
		MissingTriggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_triggers_total",
			Help:      "Messages skipped because a trigger record was missing.",
		}, []string{"trigger"}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands run, by name and outcome.",
		}, []string{"command", "outcome"}),
	}

	reg.MustRegister(m.Reactions, m.PunReplies, m.MissingTriggers, m.Commands)
	return m
}

func (m *Metrics) ObserveReaction(detector, kind string) {
	if m == nil {
		return
	}
	m.Reactions.WithLabelValues(detector, kind).Inc()
}

func (m *Metrics) ObservePunReply() {
	if m == nil {
		return
	}
	m.PunReplies.Inc()
}

func (m *Metrics) ObserveMissingTrigger(name string) {
	if m == nil {
		return
	}
	m.MissingTriggers.WithLabelValues(name).Inc()
}

func (m *Metrics) ObserveCommand(name string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Commands.WithLabelValues(name, outcome).Inc()
}
