package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
	calendarClient "github.com/StanleyOneG/ev-registration-bot/internal/infra/calendar"
)

// UseCase use case создания записи в календаре
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

// Execute проверяет заявку, перепроверяет занятость слота непосредственно
// перед вставкой и создает ровно одно событие календаря.
//
// Между перепроверкой и вставкой остается узкое окно гонки: у календаря
// нет условной вставки, поэтому две конкурирующие записи на лекцию могут
// совместно превысить вместимость. Это принятое ограничение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	b := &req.Booking

	uc.logger.Info("CreateBooking: chat=%d, commune=%s, visit=%s, slot=%s-%s, headcount=%d",
		req.ChatID, b.Commune, b.VisitType,
		b.Slot.Start.Format(domain.TimeFormat), b.Slot.End.Format(domain.TimeFormat), b.Headcount)

	// 1. Валидация полей заявки
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Слот еще не начался
	now := uc.timeProvider.Now().In(domain.Moscow)
	if !b.Slot.Start.After(now) {
		uc.logger.Warn("CreateBooking: slot %s already started", b.Slot.Start.Format(domain.TimeFormat))
		return nil, ErrSlotInPast
	}

	// 3. Перепроверка занятости по текущему состоянию календаря
	open, close := dayWindow(b.Date)
	reservations, err := uc.calendar.ListDay(ctx, b.Commune, open, close)
	if err != nil {
		if errors.Is(err, calendarClient.ErrUnavailable) {
			uc.logger.Error("CreateBooking: calendar unavailable on recheck: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		}
		uc.logger.Error("CreateBooking: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	totalGuests := 0
	switch b.VisitType {
	case domain.VisitTherapy:
		if overlapsAny(b.Slot.Start, b.Slot.End, reservations) {
			uc.logger.Warn("CreateBooking: therapy slot %s is taken", b.Slot.Start.Format(domain.TimeFormat))
			return nil, ErrSlotTaken
		}

	case domain.VisitLecture:
		if overlapsTherapy(b.Slot.Start, b.Slot.End, reservations) {
			uc.logger.Warn("CreateBooking: lecture slot %s blocked by therapy", b.Slot.Start.Format(domain.TimeFormat))
			return nil, ErrSlotTaken
		}
		booked := bookedGuests(b.Slot.Start, b.Slot.End, reservations)
		remaining := b.Commune.LectureCapacity() - booked
		if b.Headcount > remaining {
			uc.logger.Warn("CreateBooking: capacity exceeded, requested=%d, remaining=%d", b.Headcount, remaining)
			return nil, &CapacityError{Remaining: remaining}
		}
		totalGuests = b.Headcount
	}

	// 4. Одно событие календаря; формат описания — фиксированный контракт,
	// по нему событие будет заново классифицировано при чтении
	event := calendarClient.Event{
		Summary:     b.EventSummary(),
		Description: calendarClient.EncodeDescription(b.VisitType, b.Children, b.Phone, totalGuests),
		Start:       b.Slot.Start,
		End:         b.Slot.End,
		ColorID:     calendarClient.EventColor(b.VisitType, b.Commune),
	}

	if err := uc.calendar.Insert(ctx, b.Commune, event); err != nil {
		if errors.Is(err, calendarClient.ErrUnavailable) {
			uc.logger.Error("CreateBooking: insert failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		}
		uc.logger.Error("CreateBooking: insert failed: %v", err)
		return nil, fmt.Errorf("%w: insert event: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created %q for commune=%s at %s",
		event.Summary, b.Commune, b.Slot.Start.Format(domain.TimeFormat))

	return &Response{
		Commune:   b.Commune,
		VisitType: b.VisitType,
		Summary:   event.Summary,
		Start:     b.Slot.Start,
		End:       b.Slot.End,
		Headcount: b.Headcount,
	}, nil
}
