package constants

// Route constants
const (
	HomeRoute        = "/"
	PlansRoute       = "/plans"
	HistoryRoute     = "/history"
	HistoryListRoute = "/history/list"
	RechargeRoute    = "/recharge"
	LoginRoute       = "/login"
	LogoutRoute      = "/logout"
	HealthRoute      = "/healthz"
)
