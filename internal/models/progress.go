package models

// RequiredTrades is the number of executed paper trades that completes the
// onboarding milestone.
const RequiredTrades = 5

// Progress tracks how far the user is through the paper-trading onboarding.
type Progress struct {
	CompletedTrades int  `json:"completed_trades"`
	RequiredTrades  int  `json:"required_trades"`
	Complete        bool `json:"complete"`
}
