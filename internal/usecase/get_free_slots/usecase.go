package get_free_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
	calendarClient "github.com/StanleyOneG/ev-registration-bot/internal/infra/calendar"
)

// UseCase use case вычисления свободных слотов на день
type UseCase struct {
	calendar     CalendarClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calendar CalendarClient, logger Logger) *UseCase {
	return &UseCase{
		calendar:     calendar,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute вычисляет свободные слоты дня для коммуны и типа посещения.
// Повторный вызов без изменений в календаре возвращает тот же результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSlots: chat=%d, commune=%s, visit=%s, duration=%d, date=%s",
		req.ChatID, req.Commune, req.VisitType, req.DurationMinutes, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее московское время
	now := uc.timeProvider.Now().In(domain.Moscow)

	// 3. Дата в пределах горизонта записи
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetFreeSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Фактическое начало окна: для сегодняшнего дня запрос от текущего
	// момента; закончившееся окно — отдельная ошибка, а не пустой список
	windowStart, err := effectiveWindowStart(req.Date, now)
	if err != nil {
		uc.logger.Info("GetFreeSlots: operating window is over for %s", req.Date.Format(domain.DateFormat))
		return nil, err
	}
	_, windowEnd := dayWindow(req.Date)

	// 5. Существующие записи дня
	reservations, err := uc.calendar.ListDay(ctx, req.Commune, windowStart, windowEnd)
	if err != nil {
		if errors.Is(err, calendarClient.ErrUnavailable) {
			uc.logger.Error("GetFreeSlots: calendar unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		}
		uc.logger.Error("GetFreeSlots: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	// 6. Сетка кандидатов за вычетом занятого и прошедшего времени
	capacity := req.Commune.LectureCapacity()
	slots := make([]Slot, 0)

	for _, c := range generateCandidates(req.Date, req.DurationMinutes) {
		// Фильтр прошедшего времени: начало не раньше фактического окна
		if c.start.Before(windowStart) {
			continue
		}

		switch req.VisitType {
		case domain.VisitTherapy:
			// Терапия занимает коммуну целиком: любой пересекающийся
			// визит делает слот недоступным
			if overlapsAny(c, reservations) {
				continue
			}
			slots = append(slots, Slot{
				Start:          c.start,
				End:            c.end,
				AvailableSpots: 1,
				TotalSpots:     1,
			})

		case domain.VisitLecture:
			if overlapsTherapy(c, reservations) {
				continue
			}
			booked := candidateGuests(c, reservations)
			remaining := capacity - booked
			if remaining <= 0 {
				continue
			}
			slots = append(slots, Slot{
				Start:          c.start,
				End:            c.end,
				BookedGuests:   booked,
				AvailableSpots: remaining,
				TotalSpots:     capacity,
			})
		}
	}

	uc.logger.Info("GetFreeSlots: %d free slots for commune=%s, date=%s",
		len(slots), req.Commune, req.Date.Format(domain.DateFormat))

	return &Response{
		Commune:   req.Commune,
		VisitType: req.VisitType,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}
