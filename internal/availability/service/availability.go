package service

import (
	"context"
	"strings"

	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/model"

	"golang.org/x/sync/errgroup"
)

type CatalogSource interface {
	ListAll(ctx context.Context) ([]*model.Service, error)
}

type BookingSource interface {
	ListByDate(ctx context.Context, date string) ([]*model.Booking, error)
}

type AvailabilityService interface {
	Available(ctx context.Context, date string) ([]*model.Service, error)
}

type availabilityService struct {
	catalog  CatalogSource
	bookings BookingSource
	log      *logger.Logger
}

func NewAvailabilityService(catalog CatalogSource, bookings BookingSource, log *logger.Logger) AvailabilityService {
	return &availabilityService{
		catalog:  catalog,
		bookings: bookings,
		log:      log,
	}
}

// Available returns the catalog with each service's slots reduced by the
// slots already booked for that treatment on date. Slot order follows the
// catalog. Overbooked or unknown slots in the ledger are ignored.
func (s *availabilityService) Available(ctx context.Context, date string) ([]*model.Service, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, apperrors.InvalidInput("Date is required")
	}

	var (
		services []*model.Service
		bookings []*model.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = s.catalog.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = s.bookings.ListByDate(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to compute availability", "date", date, "error", err)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.StorageUnavailable("Failed to compute availability", err)
	}

	return subtractBooked(services, bookings), nil
}

func subtractBooked(services []*model.Service, bookings []*model.Booking) []*model.Service {
	booked := make(map[string]map[string]struct{}, len(bookings))
	for _, b := range bookings {
		slots, ok := booked[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			booked[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	result := make([]*model.Service, 0, len(services))
	for _, svc := range services {
		available := *svc
		taken := booked[svc.Name]
		available.Slots = make([]string, 0, len(svc.Slots))
		for _, slot := range svc.Slots {
			if _, ok := taken[slot]; !ok {
				available.Slots = append(available.Slots, slot)
			}
		}
		result = append(result, &available)
	}
	return result
}
