package model

// SocialData holds best-effort social metrics for a token mint.
type SocialData struct {
	SocialRating     int       `json:"social_rating"`
	RiskLevel        RiskLevel `json:"risk_level"`
	ActivePlatforms  []string  `json:"active_platforms,omitempty"`
	TotalFollowers   int64     `json:"total_followers"`
	VerifiedAccounts int       `json:"verified_accounts"`
	Engagement       float64   `json:"engagement"`
}
