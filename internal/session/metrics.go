package session

import "expvar"

var (
	metricGamesStarted   = expvar.NewInt("games_started_total")
	metricGamesResolved  = expvar.NewMap("games_resolved_total")
	metricInternalFaults = expvar.NewInt("game_internal_faults_total")
	metricActiveSessions = expvar.NewInt("game_sessions_active")
)
