package models

// ReminderPayload is the asynq payload of a visit reminder.
type ReminderPayload struct {
	SessionID    string          `json:"sessionId"`
	ClientID     string          `json:"clientId"`
	ContactName  string          `json:"contactName"`
	ContactPhone string          `json:"contactPhone"`
	Service      ServiceCategory `json:"service"`
	Address      string          `json:"address"`
	VisitAt      string          `json:"visitAt"` // RFC 3339
}
