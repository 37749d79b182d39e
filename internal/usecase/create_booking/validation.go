package create_booking

import (
	"fmt"
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// validateRequest валидирует заявку перед отправкой
func validateRequest(req *Request) error {
	b := &req.Booking

	if !b.Commune.Valid() {
		return fmt.Errorf("%w: unknown commune %q", ErrInvalidInput, b.Commune)
	}
	if !b.VisitType.Valid() {
		return fmt.Errorf("%w: unknown visit type %q", ErrInvalidInput, b.VisitType)
	}
	if !b.Complete() {
		return ErrIncompleteRequest
	}

	if b.Headcount < domain.MinHeadcount || b.Headcount > domain.MaxHeadcount {
		return fmt.Errorf("%w: headcount must be %d..%d, got %d",
			ErrInvalidHeadcount, domain.MinHeadcount, domain.MaxHeadcount, b.Headcount)
	}
	if b.Children < domain.MinChildren || b.Children > domain.MaxChildren {
		return fmt.Errorf("%w: children count must be %d..%d, got %d",
			ErrInvalidChildren, domain.MinChildren, domain.MaxChildren, b.Children)
	}
	if !domain.PhoneRe.MatchString(b.Phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, b.Phone)
	}

	if !b.Slot.Start.Before(b.Slot.End) {
		return fmt.Errorf("%w: slot start must be before end", ErrInvalidInput)
	}

	return nil
}

// dayWindow возвращает границы рабочего окна дня по Москве
func dayWindow(date time.Time) (open, close time.Time) {
	year, month, day := date.Date()
	open = time.Date(year, month, day, domain.OpenHour, 0, 0, 0, domain.Moscow)
	close = time.Date(year, month, day, domain.CloseHour, 0, 0, 0, domain.Moscow)
	return open, close
}

// overlapsAny проверяет пересечение слота хотя бы с одной записью
func overlapsAny(start, end time.Time, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if r.OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}

// overlapsTherapy проверяет пересечение слота с терапевтической записью
func overlapsTherapy(start, end time.Time, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if r.Kind == domain.VisitTherapy && r.OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}

// lectureGuestSum суммирует гостей лекций, пересекающихся с интервалом [start, end)
func lectureGuestSum(start, end time.Time, reservations []*domain.Reservation) int {
	sum := 0
	for _, r := range reservations {
		if r.Kind == domain.VisitLecture && r.OverlapsInterval(start, end) {
			sum += r.Guests
		}
	}
	return sum
}

// bookedGuests считает занятость слота гостями лекций.
// Часовой слот оценивается как максимум из сумм по его половинам,
// чтобы часовая запись не была посчитана дважды.
func bookedGuests(start, end time.Time, reservations []*domain.Reservation) int {
	if end.Sub(start) <= 30*time.Minute {
		return lectureGuestSum(start, end, reservations)
	}

	half := start.Add(end.Sub(start) / 2)
	first := lectureGuestSum(start, half, reservations)
	second := lectureGuestSum(half, end, reservations)
	if first > second {
		return first
	}
	return second
}
