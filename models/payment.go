package models

import "time"

const (
	// CommitmentFeeKSh is the fixed fee collected to reserve a slot, whatever the job estimate.
	CommitmentFeeKSh = 200
	PaymentMethod    = "M-Pesa"
	// SubmissionStatus is the payment status reported to the sink; the code is verified offline.
	SubmissionStatus = "VERIFYING"
	// ManualPaymentNumber receives Send Money payments when the push prompt is not used.
	ManualPaymentNumber = "0759298305"
)

// Submission is the JSON body posted to the form-submission sink.
type Submission struct {
	BookingDetails
	Email                string `json:"email"` // reply-to alias of ContactEmail
	PaymentStatus        string `json:"paymentStatus"`
	MpesaTransactionCode string `json:"mpesaTransactionCode"`
	PaymentMethod        string `json:"paymentMethod"`
	MpesaNumber          string `json:"mpesaNumber"`
	Timestamp            string `json:"timestamp"`
	AmountPaid           int    `json:"amountPaid"`
}

// NewSubmission builds the sink payload for a confirmation attempt.
func NewSubmission(s WizardState, at time.Time) Submission {
	return Submission{
		BookingDetails:       s.Details,
		Email:                s.Details.ContactEmail,
		PaymentStatus:        SubmissionStatus,
		MpesaTransactionCode: s.TransactionCode,
		PaymentMethod:        PaymentMethod,
		MpesaNumber:          s.PaymentPhone,
		Timestamp:            at.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		AmountPaid:           CommitmentFeeKSh,
	}
}

// ManualPaymentInstructions is the static Send Money alternative to the push prompt.
type ManualPaymentInstructions struct {
	Method    string   `json:"method"`
	Recipient string   `json:"recipient"`
	Amount    int      `json:"amount"`
	Currency  string   `json:"currency"`
	Steps     []string `json:"steps"`
}

// DefaultManualPaymentInstructions returns the instructions shown in manual mode.
func DefaultManualPaymentInstructions() ManualPaymentInstructions {
	return ManualPaymentInstructions{
		Method:    "Send Money",
		Recipient: ManualPaymentNumber,
		Amount:    CommitmentFeeKSh,
		Currency:  "KSh",
		Steps: []string{
			"Go to M-PESA menu.",
			"Select Send Money.",
			"Enter Number: " + ManualPaymentNumber,
			"Enter Amount: KSh 200",
			"Enter PIN and Send.",
		},
	}
}
