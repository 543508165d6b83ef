package service

import "github.com/prometheus/client_golang/prometheus"

var taskEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tasktracker_task_events_total",
		Help: "Task mutations by action.",
	},
	[]string{"action"},
)

func init() {
	prometheus.MustRegister(taskEventsTotal)
}
