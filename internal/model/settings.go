package model

import (
	"errors"
	"strings"
)

// ErrInvalidSettings rejects settings input before it reaches storage.
var ErrInvalidSettings = errors.New("mess name must be non-empty and daily cost positive")

// Settings holds the user's mess subscription details. Created during
// first-run setup and changed only through an explicit settings update.
type Settings struct {
	MessName      string  `json:"messName"`
	DailyFullCost float64 `json:"dailyFullCost"`
}

// Validate checks the settings boundary rules: non-empty name, positive
// daily cost.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.MessName) == "" || s.DailyFullCost <= 0 {
		return ErrInvalidSettings
	}
	return nil
}
