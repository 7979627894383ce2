package services

import (
	"context"
	"time"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/repository"

	"gorm.io/gorm"
)

// ReservationService handles standalone seat bookings (the checkout flow
// reuses the same conflict rule through OrderService.reserveSeat).
type ReservationService struct {
	DB      *gorm.DB
	Repo    *repository.ReservationRepository
	Hub     ChangeNotifier
	Timeout time.Duration
}

func NewReservationService(db *gorm.DB, repo *repository.ReservationRepository, hub ChangeNotifier, timeout time.Duration) *ReservationService {
	return &ReservationService{DB: db, Repo: repo, Hub: hub, Timeout: timeout}
}

func (s *ReservationService) Create(ctx context.Context, userID uint, in *ReservationIn) (*entity.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	res := entity.Reservation{
		Date: in.Date, TimeSlot: in.TimeSlot, Seat: in.Seat,
		Area: in.Area, PartySize: in.PartySize, UserID: userID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.Repo.HasConflict(tx, in.Date, in.TimeSlot, in.Seat)
		if err != nil {
			return err
		}
		if taken {
			return seatTakenError(in)
		}
		if err := s.Repo.Create(tx, &res); err != nil {
			if isUniqueViolation(err) {
				return seatTakenError(in)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Hub.Notify("reservations")
	return &res, nil
}

func (s *ReservationService) ListMine(ctx context.Context, userID uint) ([]entity.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Repo.ListForUser(ctx, userID)
}

// Cancel frees the seat again (hard delete, so the slot can be rebooked).
// Someone else's booking is ErrForbidden, a missing one is not found.
func (s *ReservationService) Cancel(ctx context.Context, userID, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.Delete(tx, userID, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			exists, err := s.Repo.Exists(tx, id)
			if err != nil {
				return err
			}
			if exists {
				return ErrForbidden
			}
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Hub.Notify("reservations")
	return nil
}
