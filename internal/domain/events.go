package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "wager.settled")
const (
	// EventTypeWagerSettled is published when a wager reaches won or lost
	EventTypeWagerSettled = "wager.settled"

	// EventTypeGroupRoundOpened is published when a new group round is created
	EventTypeGroupRoundOpened = "group_round.opened"

	// EventTypeGroupRoundCompleted is published once a group round has been settled
	EventTypeGroupRoundCompleted = "group_round.completed"

	// EventTypeChainExtended is published when a new hash chain segment is appended
	EventTypeChainExtended = "hashchain.extended"
)

// WagerSettledPayload carries the public fields of a settled wager
type WagerSettledPayload struct {
	WagerID   string      `json:"wagerId"`
	UserID    string      `json:"userId"`
	GameName  GameType    `json:"gameName"`
	GameID    string      `json:"gameId"`
	Status    WagerStatus `json:"status"`
	BetAmount string      `json:"betAmount"`
	WonAmount string      `json:"wonAmount"`
}

// GroupRoundOpenedPayload announces a new round and its deadline
type GroupRoundOpenedPayload struct {
	GameID         string `json:"gameId"`
	EndTime        int64  `json:"endTime"`
	ServerSeedHash string `json:"serverSeedHash"`
}

// GroupRoundCompletedPayload reveals a settled round
type GroupRoundCompletedPayload struct {
	GameID           string     `json:"gameId"`
	PayoutMultiplier string     `json:"payoutMultiplier"`
	WagerCount       int        `json:"wagerCount"`
	Seeds            SeedTriple `json:"seeds"`
}

// ChainExtendedPayload describes a newly appended segment
type ChainExtendedPayload struct {
	Segment   int    `json:"segment"`
	FinalHash string `json:"finalHash"`
	Length    int    `json:"length"`
}
