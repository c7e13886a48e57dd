package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts store errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "banterhall_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// LobbiesExpired counts lobbies cancelled by the expiry sweeper.
	LobbiesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "banterhall_lobbies_expired_total",
		Help: "Total number of lobbies cancelled by the expiry sweeper",
	})

	// SessionsIssued counts sessions created through signup and login.
	SessionsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "banterhall_sessions_issued_total",
		Help: "Total number of sessions issued by source",
	}, []string{"source"})
)
