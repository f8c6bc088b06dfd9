package sse

// RoundOpenedPayload announces a round and the hash of its server seed
type RoundOpenedPayload struct {
	GameID         string `json:"game_id"`
	EndTime        int64  `json:"end_time"`
	ServerSeedHash string `json:"server_seed_hash"`
}

// RoundCompletedPayload reveals the seeds of a settled round so clients can
// check it against the hash they saw when it opened
type RoundCompletedPayload struct {
	GameID           string `json:"game_id"`
	PayoutMultiplier string `json:"payout_multiplier"`
	WagerCount       int    `json:"wager_count"`
	ServerSeed       string `json:"server_seed"`
	ClientSeed       string `json:"client_seed"`
	Nonce            uint64 `json:"nonce"`
}

// WagerSettledPayload is the public part of a settled wager
type WagerSettledPayload struct {
	WagerID   string `json:"wager_id"`
	GameName  string `json:"game_name"`
	GameID    string `json:"game_id"`
	Status    string `json:"status"`
	BetAmount string `json:"bet_amount"`
	WonAmount string `json:"won_amount"`
}

// ChainExtendedPayload is a newly published chain commitment
type ChainExtendedPayload struct {
	Segment   int    `json:"segment"`
	FinalHash string `json:"final_hash"`
	Length    int    `json:"length"`
}
