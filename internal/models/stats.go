package models

// Stats summarizes the current state of the raffle for the dashboard
type Stats struct {
	TotalPrizes        int64 `json:"totalPrizes"`
	DrawnPrizes        int64 `json:"drawnPrizes"`
	TotalParticipants  int64 `json:"totalParticipants"`
	ActiveParticipants int64 `json:"activeParticipants"`
	TotalWinners       int64 `json:"totalWinners"`
}

// ConsistencyReport lists violations of the prize/participant/winner
// invariants: a drawn prize has exactly one winner, an undrawn prize has
// none, and every winner references an existing, inactive participant.
type ConsistencyReport struct {
	Consistent bool     `json:"consistent"`
	Violations []string `json:"violations"`
}
