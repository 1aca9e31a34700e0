package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"beautify/internal/events"
	"beautify/internal/payments/repository"
	"beautify/internal/payments/stripe"
	"beautify/internal/payments/validator"
	mongox "beautify/pkg/db/mongo"
	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/metrics"
	"beautify/pkg/model"
	"beautify/pkg/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingMarker flips a booking to paid.
type BookingMarker interface {
	MarkPaid(ctx context.Context, id, transactionID string) error
}

type IntentCreator interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, req *model.PaymentIntentRequest) (*model.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, bookingID string, payload map[string]any) (*model.Payment, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	bookings  BookingMarker
	intents   IntentCreator
	validator *validator.PaymentValidator
	txManager mongox.TransactionManager
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *logger.Logger
}

type Deps struct {
	Repo      repository.PaymentRepository
	Bookings  BookingMarker
	Intents   IntentCreator
	Validator *validator.PaymentValidator
	// TxManager, when set, runs both confirmation writes in one transaction.
	TxManager mongox.TransactionManager
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Log       *logger.Logger
}

func NewPaymentService(d Deps) PaymentService {
	if d.Publisher == nil {
		d.Publisher = events.Noop{}
	}
	return &paymentService{
		repo:      d.Repo,
		bookings:  d.Bookings,
		intents:   d.Intents,
		validator: d.Validator,
		txManager: d.TxManager,
		publisher: d.Publisher,
		metrics:   d.Metrics,
		log:       d.Log,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, req *model.PaymentIntentRequest) (*model.PaymentIntent, error) {
	if err := s.validator.ValidateIntent(req); err != nil {
		s.log.Warn("Payment intent validation failed", "error", err)
		return nil, validation.AppError("Invalid payment intent request", err)
	}

	secret, err := s.intents.CreateIntent(ctx, req.Price)
	if err != nil {
		if errors.Is(err, stripe.ErrNotConfigured) {
			s.log.Error("Payment provider is not configured")
			return nil, apperrors.Unavailable("Payment provider")
		}
		s.log.Error("Failed to create payment intent", "price", req.Price, "error", err)
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Failed to create payment intent", http.StatusBadGateway)
	}

	return &model.PaymentIntent{ClientSecret: secret}, nil
}

// ConfirmPayment records the payment and then marks the booking paid. Without
// a transaction manager a failure of the second step leaves the payment
// record behind; it is logged as unreconciled.
func (s *paymentService) ConfirmPayment(ctx context.Context, bookingID string, payload map[string]any) (*model.Payment, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	// Nothing is recorded against an id that can never name a booking.
	if !primitive.IsValidObjectID(bookingID) {
		return nil, apperrors.InvalidInput("Invalid booking ID format")
	}

	confirmation := &model.PaymentConfirmation{TransactionID: transactionIDFrom(payload)}
	if err := s.validator.ValidateConfirmation(confirmation); err != nil {
		s.log.Warn("Payment confirmation validation failed", "booking_id", bookingID, "error", err)
		return nil, validation.AppError("Invalid payment confirmation", err)
	}

	payment := &model.Payment{
		BookingID:     bookingID,
		TransactionID: confirmation.TransactionID,
		Payload:       payload,
	}

	var err error
	if s.txManager != nil {
		err = s.confirmInTransaction(ctx, payment)
	} else {
		err = s.confirm(ctx, payment)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.PaymentConfirmed("paid")
	s.log.Info("Payment confirmed",
		"booking_id", bookingID,
		"payment_id", payment.ID,
		"transaction_id", payment.TransactionID,
	)
	s.publisher.Publish(ctx, events.Event{
		Type: events.TypePaymentRecorded,
		Key:  bookingID,
		Payload: map[string]any{
			"id":            payment.ID,
			"bookingId":     bookingID,
			"transactionId": payment.TransactionID,
		},
	})
	return payment, nil
}

func (s *paymentService) confirm(ctx context.Context, payment *model.Payment) error {
	if err := s.repo.Insert(ctx, payment); err != nil {
		s.metrics.PaymentConfirmed("failed")
		s.log.Error("Failed to record payment", "booking_id", payment.BookingID, "error", err)
		return apperrors.StorageUnavailable("Failed to record payment", err)
	}

	if err := s.bookings.MarkPaid(ctx, payment.BookingID, payment.TransactionID); err != nil {
		s.metrics.PaymentConfirmed("unreconciled")
		s.log.Error("Payment recorded but booking not marked paid",
			"booking_id", payment.BookingID,
			"payment_id", payment.ID,
			"transaction_id", payment.TransactionID,
			"error", err,
		)
		return err
	}
	return nil
}

func (s *paymentService) confirmInTransaction(ctx context.Context, payment *model.Payment) error {
	err := s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Insert(sessCtx, payment); err != nil {
			return apperrors.StorageUnavailable("Failed to record payment", err)
		}
		return s.bookings.MarkPaid(sessCtx, payment.BookingID, payment.TransactionID)
	})
	if err != nil {
		s.metrics.PaymentConfirmed("failed")
		s.log.Error("Payment confirmation transaction failed", "booking_id", payment.BookingID, "error", err)
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.StorageUnavailable("Failed to confirm payment", err)
	}
	return nil
}

func transactionIDFrom(payload map[string]any) string {
	id, _ := payload["transactionId"].(string)
	return strings.TrimSpace(id)
}
