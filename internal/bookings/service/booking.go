package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	bookingserrors "beautify/internal/bookings/errors"
	"beautify/internal/bookings/repository"
	"beautify/internal/bookings/validator"
	"beautify/internal/events"
	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/metrics"
	"beautify/pkg/model"
	"beautify/pkg/sanitizer"
	"beautify/pkg/validation"
)

const duplicateBookingMessage = "Booking already exists"

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id string) (*model.Booking, error)
	ListByPatient(ctx context.Context, email string) ([]*model.Booking, error)
	ListByDate(ctx context.Context, date string) ([]*model.Booking, error)
	MarkPaid(ctx context.Context, id, transactionID string) error
	SetReview(ctx context.Context, id, review string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	metrics   *metrics.Metrics
	lockTTL   time.Duration
	log       *logger.Logger
}

type Deps struct {
	Repo      repository.BookingRepository
	LockRepo  repository.BookingLockRepository
	Validator *validator.BookingValidator
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	LockTTL   time.Duration
	Log       *logger.Logger
}

func NewBookingService(d Deps) BookingService {
	if d.Publisher == nil {
		d.Publisher = events.Noop{}
	}
	return &bookingService{
		repo:      d.Repo,
		lockRepo:  d.LockRepo,
		validator: d.Validator,
		publisher: d.Publisher,
		metrics:   d.Metrics,
		lockTTL:   d.LockTTL,
		log:       d.Log,
	}
}

// Create records a booking unless one already exists for the same
// (treatment, date, patient). The requested slot is not checked against the
// catalog or against other patients' bookings.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	if err := s.sanitize(booking); err != nil {
		return err
	}
	if err := s.validator.Validate(booking); err != nil {
		s.log.Warn("Booking validation failed", "error", err)
		return validation.AppError("Booking validation failed", err)
	}

	lockKey := bookingLockKey(booking)
	if err := s.lockRepo.Acquire(ctx, lockKey, s.lockTTL); err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			s.metrics.BookingConflict("lock")
			s.log.Warn("Concurrent booking attempt rejected", "lock", lockKey)
			return duplicateBooking()
		}
		s.log.Error("Failed to acquire booking lock", "lock", lockKey, "error", err)
		return apperrors.StorageUnavailable("Failed to create booking", err)
	}
	defer func() {
		// The lock must go even when the request was cancelled.
		if err := s.lockRepo.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			s.log.Warn("Failed to release booking lock", "lock", lockKey, "error", err)
		}
	}()

	exists, err := s.repo.Exists(ctx, booking.Treatment, booking.Date, booking.Patient)
	if err != nil {
		s.log.Error("Failed to check existing bookings", "error", err)
		return apperrors.StorageUnavailable("Failed to create booking", err)
	}
	if exists {
		s.metrics.BookingConflict("exists")
		s.log.Warn("Duplicate booking rejected",
			"treatment", booking.Treatment,
			"date", booking.Date,
			"patient", booking.Patient,
		)
		return duplicateBooking()
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicate) {
			s.metrics.BookingConflict("index")
			s.log.Warn("Duplicate booking rejected by unique index",
				"treatment", booking.Treatment,
				"date", booking.Date,
				"patient", booking.Patient,
			)
			return duplicateBooking()
		}
		s.log.Error("Failed to create booking", "error", err)
		return apperrors.StorageUnavailable("Failed to create booking", err)
	}

	s.metrics.BookingCreated()
	s.log.Info("Booking created successfully",
		"id", booking.ID,
		"treatment", booking.Treatment,
		"date", booking.Date,
		"slot", booking.Slot,
	)
	s.publisher.Publish(ctx, events.Event{
		Type: events.TypeBookingCreated,
		Key:  booking.ID,
		Payload: map[string]any{
			"id":        booking.ID,
			"treatment": booking.Treatment,
			"date":      booking.Date,
			"slot":      booking.Slot,
			"patient":   booking.Patient,
			"price":     booking.Price,
		},
	})
	return nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "Failed to retrieve booking")
	}
	return booking, nil
}

func (s *bookingService) ListByPatient(ctx context.Context, email string) ([]*model.Booking, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Patient email is required")
	}

	bookings, err := s.repo.FindByPatient(ctx, email)
	if err != nil {
		s.log.Error("Failed to list bookings by patient", "patient", email, "error", err)
		return nil, apperrors.StorageUnavailable("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, apperrors.InvalidInput("Date is required")
	}

	bookings, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		s.log.Error("Failed to list bookings by date", "date", date, "error", err)
		return nil, apperrors.StorageUnavailable("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// MarkPaid sets paid and transactionId. A booking already paid is
// overwritten with the new transaction id.
func (s *bookingService) MarkPaid(ctx context.Context, id, transactionID string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	transactionID = strings.TrimSpace(transactionID)
	if err := s.validator.ValidateTransactionID(transactionID); err != nil {
		return validation.AppError("Invalid payment confirmation", err)
	}

	if err := s.repo.MarkPaid(ctx, id, transactionID); err != nil {
		return s.translate(err, id, "Failed to mark booking paid")
	}

	s.log.Info("Booking marked paid", "id", id, "transaction_id", transactionID)
	s.publisher.Publish(ctx, events.Event{
		Type:    events.TypeBookingPaid,
		Key:     id,
		Payload: map[string]any{"id": id, "transactionId": transactionID},
	})
	return nil
}

// SetReview overwrites the review. Ownership of the booking is not checked.
func (s *bookingService) SetReview(ctx context.Context, id, review string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	update := &model.ReviewUpdate{Review: strings.TrimSpace(review)}
	if err := s.validator.ValidateReview(update); err != nil {
		s.log.Warn("Review validation failed", "id", id, "error", err)
		return validation.AppError("Invalid review", err)
	}

	if err := s.repo.SetReview(ctx, id, update.Review); err != nil {
		return s.translate(err, id, "Failed to save review")
	}

	s.log.Info("Booking review saved", "id", id)
	s.publisher.Publish(ctx, events.Event{
		Type:    events.TypeBookingReviewed,
		Key:     id,
		Payload: map[string]any{"id": id, "review": update.Review},
	})
	return nil
}

// --- Helpers ---

func (s *bookingService) translate(err error, id, message string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		s.log.Error(message, "id", id, "error", err)
		return apperrors.StorageUnavailable(message, err)
	}
}

// sanitize normalizes caller input and clears the fields the server owns.
func (s *bookingService) sanitize(b *model.Booking) error {
	b.ID = ""
	b.Paid = false
	b.TransactionID = ""
	b.Review = ""

	b.Treatment = sanitizer.TrimAndNormalize(b.Treatment)
	b.Date = sanitizer.TrimAndNormalize(b.Date)
	b.Slot = sanitizer.TrimAndNormalize(b.Slot)
	b.Patient = sanitizer.NormalizeEmail(b.Patient)
	b.PatientName = sanitizer.NormalizeName(b.PatientName)

	if b.Phone != "" {
		phone := sanitizer.NormalizePhone(b.Phone)
		if phone == "" {
			return apperrors.Validation("Booking validation failed", map[string]any{
				"phone": "phone must be a valid phone number",
			})
		}
		b.Phone = phone
	}
	return nil
}

func bookingLockKey(b *model.Booking) string {
	return "booking:" + b.Treatment + "|" + b.Date + "|" + b.Patient
}

func duplicateBooking() error {
	return apperrors.Conflict(duplicateBookingMessage).WithStatus(http.StatusBadRequest)
}
