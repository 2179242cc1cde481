package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fayano/models"
	"fayano/services/location"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmissionFailedNotice is shown when the sink does not accept a confirmation.
const SubmissionFailedNotice = "There was an issue processing your request. Please try again."

// WizardService persists wizard sessions and runs the asynchronous payment flows
// around Apply. Records, Reminders, Locator and AIContexts are optional.
type WizardService struct {
	Sessions   SessionStore
	Sink       SubmissionSink
	Loyalty    LoyaltyCrediter
	Records    RecordRepository
	Reminders  ReminderScheduler
	Locator    Locator
	AIContexts AIContextStore
	Timing     Timing
	Logger     *zap.Logger

	wg sync.WaitGroup
}

// Wait blocks until every background payment flow has finished.
func (s *WizardService) Wait() {
	s.wg.Wait()
}

// Open starts a wizard for clientID, optionally pre-filled from the catalog
// choice or the client's last classification.
func (s *WizardService) Open(ctx context.Context, clientID string, req models.OpenWizardRequest) (models.WizardState, error) {
	var details models.BookingDetails
	if req.Service != "" {
		c, ok := models.ParseServiceCategory(req.Service)
		if !ok {
			return models.WizardState{}, NewValidationError("Please choose one of the listed services.", models.FieldService)
		}
		details.Service = c
	}

	if req.UseAssistant && s.AIContexts != nil {
		aiCtx, err := s.AIContexts.Get(ctx, clientID)
		if err != nil {
			s.Logger.Warn("Failed to load AI context, opening wizard without it", zap.String("clientID", clientID), zap.Error(err))
		} else if aiCtx != nil {
			details.Service = aiCtx.Result.Category
			details.Description = aiCtx.Result.Reasoning
			details.EstimatedCost = aiCtx.Result.EstimatedPriceMin
		}
	}

	state := models.NewWizardState(uuid.New().String(), clientID, details)
	if err := s.Sessions.Create(ctx, state); err != nil {
		return models.WizardState{}, err
	}
	s.Logger.Info("Booking wizard opened",
		zap.String("sessionID", state.SessionID),
		zap.String("clientID", clientID),
		zap.String("service", string(state.Details.Service)),
	)
	return state, nil
}

// Get returns the session if it belongs to clientID.
func (s *WizardService) Get(ctx context.Context, clientID, sessionID string) (models.WizardState, error) {
	state, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return models.WizardState{}, err
	}
	if state.ClientID != clientID {
		return models.WizardState{}, ErrSessionNotFound
	}
	return state, nil
}

func (s *WizardService) dispatch(ctx context.Context, clientID, sessionID string, ev Event) (models.WizardState, error) {
	return s.Sessions.Update(ctx, sessionID, func(st models.WizardState) (models.WizardState, error) {
		if clientID != "" && st.ClientID != clientID {
			return st, ErrSessionNotFound
		}
		return Apply(st, ev)
	})
}

func (s *WizardService) Edit(ctx context.Context, clientID, sessionID, field, value string) (models.WizardState, error) {
	return s.dispatch(ctx, clientID, sessionID, EditField{Field: field, Value: value})
}

func (s *WizardService) Next(ctx context.Context, clientID, sessionID string) (models.WizardState, error) {
	return s.dispatch(ctx, clientID, sessionID, Next{})
}

// Back returns one step; at step 1 the wizard is abandoned and its session removed.
func (s *WizardService) Back(ctx context.Context, clientID, sessionID string) (models.WizardState, error) {
	state, err := s.dispatch(ctx, clientID, sessionID, Back{})
	if err != nil {
		return state, err
	}
	if state.Outcome == models.OutcomeAbandoned {
		if err := s.Sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
			s.Logger.Warn("Failed to discard abandoned session", zap.String("sessionID", sessionID), zap.Error(err))
		}
		s.clearAIContext(ctx, clientID)
		s.Logger.Info("Booking wizard abandoned", zap.String("sessionID", sessionID))
	}
	return state, nil
}

// Abandon discards the session. In-flight flows are not compensated.
func (s *WizardService) Abandon(ctx context.Context, clientID, sessionID string) error {
	if _, err := s.Get(ctx, clientID, sessionID); err != nil {
		return err
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.clearAIContext(ctx, clientID)
	s.Logger.Info("Booking wizard abandoned", zap.String("sessionID", sessionID))
	return nil
}

// clearAIContext drops the client classification once its wizard closes.
func (s *WizardService) clearAIContext(ctx context.Context, clientID string) {
	if s.AIContexts == nil {
		return
	}
	if err := s.AIContexts.Clear(ctx, clientID); err != nil {
		s.Logger.Warn("Failed to clear AI context", zap.String("clientID", clientID), zap.Error(err))
	}
}

// Locate writes a map link into the address field. Browser coordinates win;
// without them the client IP is used. On failure the address is untouched.
func (s *WizardService) Locate(ctx context.Context, clientID, sessionID string, req models.LocationRequest, clientIP string) (models.WizardState, error) {
	var lat, lng float64
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		lat, lng = *req.Latitude, *req.Longitude
	case s.Locator != nil:
		c, err := s.Locator.Locate(ctx, clientIP)
		if err != nil {
			return models.WizardState{}, err
		}
		lat, lng = c.Latitude, c.Longitude
	default:
		return models.WizardState{}, location.ErrLocationUnavailable
	}

	link, err := location.MapLink(lat, lng)
	if err != nil {
		return models.WizardState{}, err
	}
	return s.dispatch(ctx, clientID, sessionID, EditField{Field: models.FieldAddress, Value: link})
}

func (s *WizardService) SetPaymentPhone(ctx context.Context, clientID, sessionID, phone string) (models.WizardState, error) {
	return s.dispatch(ctx, clientID, sessionID, EditPaymentPhone{Phone: phone})
}

func (s *WizardService) SelectManual(ctx context.Context, clientID, sessionID string, on bool) (models.WizardState, error) {
	return s.dispatch(ctx, clientID, sessionID, SelectManualPayment{On: on})
}

func (s *WizardService) SetTransactionCode(ctx context.Context, clientID, sessionID, code string) (models.WizardState, error) {
	return s.dispatch(ctx, clientID, sessionID, EditTransactionCode{Code: code})
}

// InitiatePrompt marks the push prompt as sending and delivers it after the
// configured latency.
func (s *WizardService) InitiatePrompt(ctx context.Context, clientID, sessionID string) (models.WizardState, error) {
	state, err := s.dispatch(ctx, clientID, sessionID, InitiatePrompt{})
	if err != nil {
		return state, err
	}
	s.Logger.Info("M-Pesa prompt requested",
		zap.String("sessionID", sessionID),
		zap.String("phone", state.PaymentPhone),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		time.Sleep(s.Timing.PromptLatency)
		if _, err := s.dispatch(context.Background(), "", sessionID, PromptDelivered{}); err != nil {
			s.Logger.Warn("Could not mark M-Pesa prompt as sent", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()
	return state, nil
}

// Confirm moves payment to processing and submits the booking in the
// background. Concurrent confirms are rejected while one is in flight.
func (s *WizardService) Confirm(ctx context.Context, clientID, sessionID string) (models.WizardState, error) {
	state, err := s.dispatch(ctx, clientID, sessionID, ConfirmPayment{})
	if err != nil {
		return state, err
	}
	s.Logger.Info("Payment confirmation started", zap.String("sessionID", sessionID))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.finalize(context.Background(), state)
	}()
	return state, nil
}

func (s *WizardService) finalize(ctx context.Context, state models.WizardState) {
	log := s.Logger.With(zap.String("sessionID", state.SessionID), zap.String("clientID", state.ClientID))
	submittedAt := time.Now()

	if err := s.Sink.Submit(ctx, models.NewSubmission(state, submittedAt)); err != nil {
		log.Error("Booking submission failed", zap.Error(err))
		if _, err := s.dispatch(ctx, "", state.SessionID, SubmissionFailed{Notice: SubmissionFailedNotice}); err != nil {
			log.Warn("Could not revert payment status", zap.Error(err))
		}
		return
	}
	log.Info("Booking submission accepted")

	if s.Records != nil {
		rec := &models.BookingRecord{
			ID:              state.SessionID,
			ClientID:        state.ClientID,
			Details:         state.Details,
			TransactionCode: state.TransactionCode,
			PaymentPhone:    state.PaymentPhone,
			PaymentMethod:   models.PaymentMethod,
			PaymentStatus:   models.SubmissionStatus,
			AmountPaid:      models.CommitmentFeeKSh,
			SubmittedAt:     submittedAt.UTC(),
		}
		if err := s.Records.Create(ctx, rec); err != nil {
			log.Error("Failed to store booking record", zap.Error(err))
		}
	}

	time.Sleep(s.Timing.VerificationDelay)

	count, err := s.Loyalty.Credit(ctx, state.ClientID, state.SessionID)
	if err != nil {
		log.Error("Failed to credit loyalty stamp", zap.Error(err))
		if count, err = s.Loyalty.ReadCount(ctx, state.ClientID); err != nil {
			log.Warn("Failed to read loyalty count", zap.Error(err))
		}
	}

	verified, err := s.dispatch(ctx, "", state.SessionID, PaymentVerified{LoyaltyCount: count})
	if err != nil {
		log.Warn("Could not record payment success", zap.Error(err))
		return
	}
	log.Info("Payment verified", zap.Int("loyaltyCount", count))

	s.scheduleReminder(ctx, verified, log)

	time.Sleep(s.Timing.CompletionDelay)
	if _, err := s.dispatch(ctx, "", state.SessionID, Complete{}); err != nil {
		log.Warn("Could not complete booking wizard", zap.Error(err))
		return
	}
	s.clearAIContext(ctx, state.ClientID)
	log.Info("Booking wizard completed")
}

func (s *WizardService) scheduleReminder(ctx context.Context, state models.WizardState, log *zap.Logger) {
	if s.Reminders == nil {
		return
	}
	visitAt, err := VisitTime(state.Details)
	if err != nil {
		log.Warn("Skipping visit reminder", zap.Error(err))
		return
	}
	if !visitAt.After(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		SessionID:    state.SessionID,
		ClientID:     state.ClientID,
		ContactName:  state.Details.ContactName,
		ContactPhone: state.Details.ContactPhone,
		Service:      state.Details.Service,
		Address:      state.Details.Address,
		VisitAt:      visitAt.Format(time.RFC3339),
	}
	if err := s.Reminders.ScheduleVisitReminder(ctx, payload, visitAt); err != nil {
		log.Error("Failed to schedule visit reminder", zap.Error(err))
	}
}

// VisitTime combines the booked date and time slot in the server's local zone.
func VisitTime(d models.BookingDetails) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout+" "+models.SlotLayout, d.Date+" "+d.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid visit date/time %q %q: %w", d.Date, d.Time, err)
	}
	return t, nil
}
