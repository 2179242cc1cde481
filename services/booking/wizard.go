package booking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fayano/models"
)

// Event is an input to the wizard state machine.
type Event interface {
	isEvent()
}

type (
	// EditField sets one BookingDetails field.
	EditField struct {
		Field string
		Value string
	}
	// Next advances one step if the current step's gate passes.
	Next struct{}
	// Back returns one step; at step 1 it abandons the wizard.
	Back struct{}
	// EditPaymentPhone sets the number the M-Pesa prompt is pushed to.
	EditPaymentPhone struct{ Phone string }
	// EditTransactionCode sets the proof-of-payment reference.
	EditTransactionCode struct{ Code string }
	// InitiatePrompt requests the M-Pesa push prompt.
	InitiatePrompt struct{}
	// PromptDelivered ends the simulated prompt latency.
	PromptDelivered struct{}
	// SelectManualPayment toggles the Send Money instructions.
	SelectManualPayment struct{ On bool }
	// ConfirmPayment starts submission of the booking.
	ConfirmPayment struct{}
	// SubmissionFailed reverts a confirmation attempt.
	SubmissionFailed struct{ Notice string }
	// PaymentVerified records success and the loyalty count it produced.
	PaymentVerified struct{ LoyaltyCount int }
	// Complete signals the caller that the booking is done.
	Complete struct{}
)

func (EditField) isEvent()           {}
func (Next) isEvent()                {}
func (Back) isEvent()                {}
func (EditPaymentPhone) isEvent()    {}
func (EditTransactionCode) isEvent() {}
func (InitiatePrompt) isEvent()      {}
func (PromptDelivered) isEvent()     {}
func (SelectManualPayment) isEvent() {}
func (ConfirmPayment) isEvent()      {}
func (SubmissionFailed) isEvent()    {}
func (PaymentVerified) isEvent()     {}
func (Complete) isEvent()            {}

// Apply is the wizard's transition function. On error the input state is
// returned unchanged. Apply has no side effects.
func Apply(s models.WizardState, ev Event) (models.WizardState, error) {
	if s.Outcome != models.OutcomeOpen {
		return s, ErrWizardClosed
	}

	next := s
	var err error
	switch e := ev.(type) {
	case EditField:
		err = applyEditField(&next, e)
	case Next:
		err = applyNext(&next)
	case Back:
		err = applyBack(&next)
	case EditPaymentPhone:
		err = applyEditPaymentPhone(&next, e)
	case EditTransactionCode:
		err = applyEditTransactionCode(&next, e)
	case InitiatePrompt:
		err = applyInitiatePrompt(&next)
	case PromptDelivered:
		if next.StkStatus != models.StkSending {
			err = NewTransitionError("prompt delivered while stk status is %s", next.StkStatus)
			break
		}
		next.StkStatus = models.StkPromptSent
	case SelectManualPayment:
		err = applySelectManual(&next, e)
	case ConfirmPayment:
		err = applyConfirm(&next)
	case SubmissionFailed:
		if next.PaymentStatus != models.PaymentProcessing {
			err = NewTransitionError("submission failed while payment is %s", next.PaymentStatus)
			break
		}
		next.PaymentStatus = models.PaymentIdle
		next.Notice = e.Notice
	case PaymentVerified:
		if next.PaymentStatus != models.PaymentProcessing {
			err = NewTransitionError("payment verified while payment is %s", next.PaymentStatus)
			break
		}
		next.PaymentStatus = models.PaymentSuccess
		next.LoyaltyCount = e.LoyaltyCount
		next.Notice = ""
	case Complete:
		if next.PaymentStatus != models.PaymentSuccess {
			err = NewTransitionError("cannot complete while payment is %s", next.PaymentStatus)
			break
		}
		next.Outcome = models.OutcomeCompleted
	default:
		err = NewTransitionError("unknown event %T", ev)
	}
	if err != nil {
		return s, err
	}
	next.UpdatedAt = time.Now()
	return next, nil
}

func blank(v string) bool {
	return strings.TrimSpace(v) == ""
}

func paymentBusy(s *models.WizardState) error {
	switch s.PaymentStatus {
	case models.PaymentProcessing:
		return ErrPaymentInProgress
	case models.PaymentSuccess:
		return ErrAlreadyPaid
	}
	return nil
}

func applyEditField(s *models.WizardState, e EditField) error {
	if err := paymentBusy(s); err != nil {
		return err
	}
	d := &s.Details
	switch e.Field {
	case models.FieldService:
		c, ok := models.ParseServiceCategory(e.Value)
		if !ok {
			return NewValidationError("Please choose one of the listed services.", models.FieldService)
		}
		d.Service = c
	case models.FieldDescription:
		d.Description = e.Value
	case models.FieldDate:
		if !blank(e.Value) {
			if _, err := time.Parse(models.DateLayout, strings.TrimSpace(e.Value)); err != nil {
				return NewValidationError("Please select a valid date.", models.FieldDate)
			}
		}
		d.Date = strings.TrimSpace(e.Value)
	case models.FieldTime:
		if !blank(e.Value) && !models.IsTimeSlot(e.Value) {
			return NewValidationError("Please pick one of the available time slots.", models.FieldTime)
		}
		d.Time = e.Value
	case models.FieldAddress:
		d.Address = e.Value
	case models.FieldContactName:
		d.ContactName = e.Value
	case models.FieldContactPhone:
		d.ContactPhone = e.Value
		// Auto-fill once: only an empty payment phone follows the contact phone.
		if blank(s.PaymentPhone) {
			s.PaymentPhone = e.Value
		}
	case models.FieldContactEmail:
		d.ContactEmail = e.Value
	case models.FieldEstimatedCost:
		cost, err := strconv.ParseFloat(strings.TrimSpace(e.Value), 64)
		if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
			return NewValidationError("Estimated cost must be a non-negative number.", models.FieldEstimatedCost)
		}
		d.EstimatedCost = cost
	default:
		return NewValidationError(fmt.Sprintf("Unknown field %q.", e.Field), e.Field)
	}
	return nil
}

func missingJobDetails(d models.BookingDetails) []string {
	var missing []string
	if blank(d.Description) {
		missing = append(missing, models.FieldDescription)
	}
	if blank(d.Date) {
		missing = append(missing, models.FieldDate)
	}
	if blank(d.Time) {
		missing = append(missing, models.FieldTime)
	}
	return missing
}

func missingContactInfo(d models.BookingDetails) []string {
	var missing []string
	if blank(d.Address) {
		missing = append(missing, models.FieldAddress)
	}
	if blank(d.ContactName) {
		missing = append(missing, models.FieldContactName)
	}
	if blank(d.ContactPhone) {
		missing = append(missing, models.FieldContactPhone)
	}
	if blank(d.ContactEmail) {
		missing = append(missing, models.FieldContactEmail)
	}
	return missing
}

func applyNext(s *models.WizardState) error {
	switch s.Step {
	case models.StepJobDetails:
		missing := missingJobDetails(s.Details)
		if len(missing) > 0 {
			if blank(s.Details.Description) {
				return NewValidationError("Please describe the work needed.", missing...)
			}
			return NewValidationError("Please select a preferred date and time.", missing...)
		}
		s.Step = models.StepContactInfo
	case models.StepContactInfo:
		missing := missingContactInfo(s.Details)
		if len(missing) > 0 {
			if blank(s.Details.Address) {
				return NewValidationError("Please provide an address or use the location button.", missing...)
			}
			return NewValidationError("Please provide your name, phone, and email address.", missing...)
		}
		if blank(s.PaymentPhone) {
			s.PaymentPhone = s.Details.ContactPhone
		}
		s.Step = models.StepPayment
	default:
		return NewTransitionError("no step after %s", s.Step)
	}
	return nil
}

func applyBack(s *models.WizardState) error {
	switch s.Step {
	case models.StepJobDetails:
		s.Outcome = models.OutcomeAbandoned
	case models.StepContactInfo:
		s.Step = models.StepJobDetails
	case models.StepPayment:
		s.Step = models.StepContactInfo
	default:
		return NewTransitionError("no step before %s", s.Step)
	}
	return nil
}

func requirePaymentStep(s *models.WizardState) error {
	if s.Step != models.StepPayment {
		return NewTransitionError("payment actions need step %d, wizard is at step %d", models.StepPayment, s.Step)
	}
	return paymentBusy(s)
}

func applyEditPaymentPhone(s *models.WizardState, e EditPaymentPhone) error {
	if err := requirePaymentStep(s); err != nil {
		return err
	}
	if s.StkStatus == models.StkSending {
		return NewTransitionError("payment phone cannot change while the prompt is being sent")
	}
	s.PaymentPhone = e.Phone
	return nil
}

func applyEditTransactionCode(s *models.WizardState, e EditTransactionCode) error {
	if err := requirePaymentStep(s); err != nil {
		return err
	}
	if !s.CodeEntryUnlocked() {
		return ErrPaymentLocked
	}
	s.TransactionCode = strings.ToUpper(e.Code)
	return nil
}

// ValidPaymentPhone accepts 9 to 12 digits, optionally prefixed with + and separated by spaces or dashes.
func ValidPaymentPhone(phone string) bool {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "+")
	p = strings.NewReplacer(" ", "", "-", "").Replace(p)
	if len(p) < 9 || len(p) > 12 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func applyInitiatePrompt(s *models.WizardState) error {
	if err := requirePaymentStep(s); err != nil {
		return err
	}
	if s.ManualPaymentSelected {
		return NewTransitionError("manual payment is selected")
	}
	if s.StkStatus != models.StkIdle {
		return NewTransitionError("prompt already %s", s.StkStatus)
	}
	if blank(s.PaymentPhone) || !ValidPaymentPhone(s.PaymentPhone) {
		return NewValidationError("Please enter a valid M-Pesa phone number", "paymentPhone")
	}
	s.StkStatus = models.StkSending
	return nil
}

func applySelectManual(s *models.WizardState, e SelectManualPayment) error {
	if err := requirePaymentStep(s); err != nil {
		return err
	}
	if s.StkStatus == models.StkSending {
		return NewTransitionError("cannot switch payment mode while the prompt is being sent")
	}
	s.ManualPaymentSelected = e.On
	if !e.On {
		s.StkStatus = models.StkIdle
	}
	return nil
}

func applyConfirm(s *models.WizardState) error {
	if err := requirePaymentStep(s); err != nil {
		return err
	}
	if !s.CodeEntryUnlocked() {
		return ErrPaymentLocked
	}
	if blank(s.TransactionCode) {
		return NewValidationError("Please enter the M-Pesa transaction code.", "transactionCode")
	}
	s.TransactionCode = strings.TrimSpace(s.TransactionCode)
	s.PaymentStatus = models.PaymentProcessing
	s.Notice = ""
	return nil
}
