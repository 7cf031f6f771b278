package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 版本子系统指标，通过私有监听的 /metrics 导出
var (
	versionCreatedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quill_notes",
		Name:      "note_versions_created_total",
		Help:      "Number of note versions created, by trigger.",
	}, []string{"trigger"})

	versionRestoredCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quill_notes",
		Name:      "note_versions_restored_total",
		Help:      "Number of restore operations completed.",
	})

	diffRequestCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quill_notes",
		Name:      "note_version_diff_requests_total",
		Help:      "Number of version diff requests served.",
	})
)
