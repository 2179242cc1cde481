package models

import "fmt"

// StampsPerReward is how many completed bookings earn a free service.
const StampsPerReward = 10

// LoyaltySummary is the read model behind the stamp card.
type LoyaltySummary struct {
	Count              int    `json:"count"`
	Stamps             int    `json:"stamps"`
	FreeServicesEarned int    `json:"freeServicesEarned"`
	Remaining          int    `json:"remaining"`
	Grid               []bool `json:"grid"`
	Headline           string `json:"headline"`
	Progress           string `json:"progress"`
}

// NewLoyaltySummary derives the stamp card from a completed-booking count.
func NewLoyaltySummary(count int) LoyaltySummary {
	if count < 0 {
		count = 0
	}
	stamps := count % StampsPerReward
	cycles := count / StampsPerReward
	remaining := StampsPerReward - stamps

	grid := make([]bool, StampsPerReward)
	for i := 0; i < stamps; i++ {
		grid[i] = true
	}

	headline := "Collect 10 stamps for a Free Service"
	if cycles > 0 {
		headline = fmt.Sprintf("You've earned %d Free Services!", cycles)
	}
	progress := fmt.Sprintf("%d more booking until your next reward.", remaining)
	if remaining > 1 {
		progress = fmt.Sprintf("%d more bookings until your next reward.", remaining)
	}

	return LoyaltySummary{
		Count:              count,
		Stamps:             stamps,
		FreeServicesEarned: cycles,
		Remaining:          remaining,
		Grid:               grid,
		Headline:           headline,
		Progress:           progress,
	}
}
