package httptransport

import "expvar"

var (
	metricGameRequestsTotal  = expvar.NewInt("game_requests_total")
	metricGameRequestErrors  = expvar.NewInt("game_request_errors_total")
	metricCommandsTotal      = expvar.NewInt("commands_total")
	metricRateLimitedTotal   = expvar.NewInt("rate_limited_total")
	metricAdminTopupsTotal   = expvar.NewInt("admin_topups_total")
	metricAdminTopupCoinsSum = expvar.NewInt("admin_topup_coins_total")
)
