package model

// BehaviorScores holds six independent 0-100 scores.
type BehaviorScores struct {
	Trader    int `json:"trader_score"`
	Holder    int `json:"holder_score"`
	DeFi      int `json:"defi_score"`
	Whale     int `json:"whale_score"`
	Activity  int `json:"activity_score"`
	Diversity int `json:"diversity_score"`
}

// BehaviorReport pairs the score vector with its tag set. Tags is never
// empty: "Casual User" is emitted when no ladder fires.
type BehaviorReport struct {
	Scores BehaviorScores `json:"scores"`
	Tags   []string       `json:"tags"`
}
