package api

import (
	"time"

	log "github.com/sirupsen/logrus"
)

type listRequestMetrics struct {
	logger         *log.Logger
	start          time.Time
	authDuration   time.Duration
	queryDuration  time.Duration
	encodeDuration time.Duration
	searchProvided bool
	itemsReturned  int
	errorStage     string
}

func newListRequestMetrics(logger *log.Logger) *listRequestMetrics {
	return &listRequestMetrics{
		logger: logger,
		start:  time.Now(),
	}
}

func (m *listRequestMetrics) ObserveAuth(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.authDuration = duration
}

func (m *listRequestMetrics) ObserveQuery(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.queryDuration = duration
}

func (m *listRequestMetrics) ObserveEncode(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.encodeDuration = duration
}

func (m *listRequestMetrics) SetSearchProvided(provided bool) {
	m.searchProvided = provided
}

func (m *listRequestMetrics) SetItemsReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.itemsReturned = count
}

func (m *listRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *listRequestMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}

	fields := log.Fields{
		"route":           "/api/todos",
		"status":          status,
		"total_ms":        durationToMillis(time.Since(m.start)),
		"search_provided": m.searchProvided,
		"items_returned":  m.itemsReturned,
	}

	if m.authDuration > 0 {
		fields["auth_ms"] = durationToMillis(m.authDuration)
	}
	if m.queryDuration > 0 {
		fields["query_ms"] = durationToMillis(m.queryDuration)
	}
	if m.encodeDuration > 0 {
		fields["encode_ms"] = durationToMillis(m.encodeDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	m.logger.WithFields(fields).Info("todos.request.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
