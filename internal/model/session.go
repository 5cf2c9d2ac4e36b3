package model

import (
	"time"

	"github.com/charitytools/bidcraft/internal/funder"
)

// Session is the working state for one funding request, from first input
// through to the generated document. It lives in memory only; nothing is
// persisted once the session is dropped.
type Session struct {
	ID         string         `json:"id"`
	Mode       Mode           `json:"mode"`
	FunderName string         `json:"funderName"`
	Input      string         `json:"input"`
	Detected   Facts          `json:"detected"`
	Profile    funder.Profile `json:"profile"`
	Answers    Answers        `json:"answers"`
	NotSure    NotSure        `json:"notSure"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
