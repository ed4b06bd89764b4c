package models

// CardLimit represents the spending limit of a user's card.
// AvailableAmount is derived from CurrentLimit and UsedAmount on every
// read; it is never stored. All amounts are in minor units (cents).
type CardLimit struct {
	UserID          int64  `json:"user_id"`
	CurrentLimit    int64  `json:"current_limit"`
	UsedAmount      int64  `json:"used_amount"`
	AvailableAmount int64  `json:"available_amount"`
	MinAllowedLimit int64  `json:"min_allowed_limit"`
	MaxAllowedLimit int64  `json:"max_allowed_limit"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// Recompute refreshes AvailableAmount after CurrentLimit or UsedAmount
// changed.
func (c *CardLimit) Recompute() {
	c.AvailableAmount = c.CurrentLimit - c.UsedAmount
}
