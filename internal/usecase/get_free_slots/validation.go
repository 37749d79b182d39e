package get_free_slots

import (
	"fmt"
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Commune.Valid() {
		return fmt.Errorf("%w: unknown commune %q", ErrInvalidInput, req.Commune)
	}

	if !req.VisitType.Valid() {
		return fmt.Errorf("%w: unknown visit type %q", ErrInvalidInput, req.VisitType)
	}

	switch req.VisitType {
	case domain.VisitTherapy:
		if req.DurationMinutes != domain.TherapyDurationMinutes {
			return fmt.Errorf("%w: therapy slots are %d minutes", ErrInvalidInput, domain.TherapyDurationMinutes)
		}
	case domain.VisitLecture:
		if req.DurationMinutes != domain.LectureFullDurationMinutes &&
			req.DurationMinutes != domain.LectureHalfDurationMinutes {
			return fmt.Errorf("%w: lecture slots are %d or %d minutes",
				ErrInvalidInput, domain.LectureFullDurationMinutes, domain.LectureHalfDurationMinutes)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата в пределах горизонта записи
func validateDate(date, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrDateInPast
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, domain.AdvanceBookingDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, domain.AdvanceBookingDays)
	}

	return nil
}
