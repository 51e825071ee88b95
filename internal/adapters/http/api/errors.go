package api

// Fixed client-facing messages. Store failures never leak their detail.
const (
	msgPlayerNotFound = "Player not found"
	msgTeamNotFound   = "Team not found"
	msgGameNotFound   = "Game not found"
	msgRouteNotFound  = "Not found"
	msgMethod         = "Method not allowed"
	msgRateLimited    = "Too many requests"

	msgEventsFailed       = "Failed to fetch events"
	msgTeamsFailed        = "Failed to fetch teams"
	msgTeamStatsFailed    = "Failed to fetch team stats"
	msgTeamDetailFailed   = "Failed to fetch team details"
	msgTeamAveragesFailed = "Failed to fetch team averages"
	msgPlayersFailed      = "Failed to fetch players"
	msgPlayerDetailFailed = "Failed to fetch player details"
	msgGamesFailed        = "Failed to fetch games"
	msgGameDetailFailed   = "Failed to fetch game details"
)
