package models

import "time"

// WizardStep is the current page of the booking wizard.
type WizardStep int

const (
	StepJobDetails  WizardStep = 1
	StepContactInfo WizardStep = 2
	StepPayment     WizardStep = 3
)

func (s WizardStep) String() string {
	switch s {
	case StepJobDetails:
		return "Job Details"
	case StepContactInfo:
		return "Contact Info"
	case StepPayment:
		return "Secure Payment"
	}
	return "Unknown"
}

// PaymentStatus tracks the confirmation of the commitment fee.
type PaymentStatus string

const (
	PaymentIdle       PaymentStatus = "idle"
	PaymentProcessing PaymentStatus = "processing"
	PaymentSuccess    PaymentStatus = "success"
)

// StkStatus tracks the simulated M-Pesa push prompt.
type StkStatus string

const (
	StkIdle       StkStatus = "idle"
	StkSending    StkStatus = "sending"
	StkPromptSent StkStatus = "prompt_sent"
)

// WizardOutcome is empty while the wizard is open.
type WizardOutcome string

const (
	OutcomeOpen      WizardOutcome = ""
	OutcomeCompleted WizardOutcome = "completed"
	OutcomeAbandoned WizardOutcome = "abandoned"
)

// WizardState is everything one booking wizard owns. It is persisted per session.
type WizardState struct {
	SessionID             string         `json:"sessionId"`
	ClientID              string         `json:"clientId"`
	Step                  WizardStep     `json:"step"`
	Details               BookingDetails `json:"details"`
	PaymentStatus         PaymentStatus  `json:"paymentStatus"`
	StkStatus             StkStatus      `json:"stkStatus"`
	ManualPaymentSelected bool           `json:"manualPaymentSelected"`
	PaymentPhone          string         `json:"paymentPhone"`
	TransactionCode       string         `json:"transactionCode"`
	Outcome               WizardOutcome  `json:"outcome,omitempty"`
	Notice                string         `json:"notice,omitempty"`
	LoyaltyCount          int            `json:"loyaltyCount,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

// NewWizardState returns a wizard at step 1 with empty payment sub-states.
func NewWizardState(sessionID, clientID string, details BookingDetails) WizardState {
	if details.Service == "" {
		details.Service = CategoryGeneral
	}
	now := time.Now()
	return WizardState{
		SessionID:     sessionID,
		ClientID:      clientID,
		Step:          StepJobDetails,
		Details:       details,
		PaymentStatus: PaymentIdle,
		StkStatus:     StkIdle,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CodeEntryUnlocked reports whether the transaction-code input is available.
func (s WizardState) CodeEntryUnlocked() bool {
	return s.StkStatus == StkPromptSent || s.ManualPaymentSelected
}

// OpenWizardRequest is the payload of POST /api/booking/session.
type OpenWizardRequest struct {
	Service      string `json:"service,omitempty"`
	UseAssistant bool   `json:"useAssistant,omitempty"`
}

// FieldEditRequest is the payload of PATCH /api/booking/session/:id.
type FieldEditRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// LocationRequest carries browser coordinates; both nil means the browser could not provide them.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// WizardView is the session representation returned to the client.
type WizardView struct {
	WizardState
	StepTitle         string `json:"stepTitle"`
	CodeEntryUnlocked bool   `json:"codeEntryUnlocked"`
	CommitmentFee     int    `json:"commitmentFee"`
	// Set once the wizard completes: the client returns home and opens the loyalty display.
	NextView    string `json:"nextView,omitempty"`
	OpenLoyalty bool   `json:"openLoyalty,omitempty"`
}

// NewWizardView decorates s for the client.
func NewWizardView(s WizardState) WizardView {
	v := WizardView{
		WizardState:       s,
		StepTitle:         s.Step.String(),
		CodeEntryUnlocked: s.CodeEntryUnlocked(),
		CommitmentFee:     CommitmentFeeKSh,
	}
	if s.Outcome == OutcomeCompleted {
		v.NextView = "home"
		v.OpenLoyalty = true
	}
	return v
}
