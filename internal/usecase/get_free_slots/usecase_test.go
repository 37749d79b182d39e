package get_free_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
	calendarClient "github.com/StanleyOneG/ev-registration-bot/internal/infra/calendar"
)

// fakeCalendar подставной адаптер календаря: отдает заранее заданные записи,
// пересекающиеся с запрошенным интервалом
type fakeCalendar struct {
	reservations []*domain.Reservation
	err          error

	calls int
}

func (f *fakeCalendar) ListDay(_ context.Context, _ domain.Commune, from, to time.Time) ([]*domain.Reservation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.OverlapsInterval(from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

// fixedTime провайдер фиксированного времени
type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func msk(day, hour, minute int) time.Time {
	return time.Date(2024, 5, day, hour, minute, 0, 0, domain.Moscow)
}

func newTestUseCase(cal *fakeCalendar, now time.Time) *UseCase {
	uc := NewUseCase(cal, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func slotStartHours(slots []Slot) []int {
	hours := make([]int, 0, len(slots))
	for _, s := range slots {
		hours = append(hours, s.Start.In(domain.Moscow).Hour())
	}
	return hours
}

func TestExecute_TherapyEmptyDay(t *testing.T) {
	cal := &fakeCalendar{}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		ChatID:          1,
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)

	// Все рабочие часы кроме 15:00 и 16:00
	assert.Equal(t, []int{11, 12, 13, 14, 17, 18, 19, 20}, slotStartHours(resp.Slots))
	for _, s := range resp.Slots {
		assert.Equal(t, 1, s.AvailableSpots)
		assert.Equal(t, 1, s.TotalSpots)
		assert.Equal(t, 0, s.BookedGuests)
		assert.Equal(t, 60, int(s.End.Sub(s.Start)/time.Minute))
	}
}

func TestExecute_TherapyBlockedByTherapy(t *testing.T) {
	cal := &fakeCalendar{reservations: []*domain.Reservation{
		{Start: msk(12, 13, 0), End: msk(12, 14, 0), Kind: domain.VisitTherapy},
	}}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{11, 12, 14, 17, 18, 19, 20}, slotStartHours(resp.Slots))
}

// Терапия занимает коммуну эксклюзивно: лекция тоже блокирует слот
func TestExecute_TherapyBlockedByLecture(t *testing.T) {
	cal := &fakeCalendar{reservations: []*domain.Reservation{
		{Start: msk(12, 11, 0), End: msk(12, 12, 0), Kind: domain.VisitLecture, Guests: 2},
	}}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{12, 13, 14, 17, 18, 19, 20}, slotStartHours(resp.Slots))
}

// Событие не по сетке делает недоступными оба соседних часовых слота
func TestExecute_TherapyOffGridReservation(t *testing.T) {
	cal := &fakeCalendar{reservations: []*domain.Reservation{
		{Start: msk(12, 13, 30), End: msk(12, 14, 30), Kind: domain.VisitTherapy},
	}}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{11, 12, 17, 18, 19, 20}, slotStartHours(resp.Slots))
}

func TestExecute_LectureCapacity(t *testing.T) {
	// Две лекции пересекают интервал 11:00-11:30: 2 + 3 гостей
	cal := &fakeCalendar{reservations: []*domain.Reservation{
		{Start: msk(12, 11, 0), End: msk(12, 12, 0), Kind: domain.VisitLecture, Guests: 2},
		{Start: msk(12, 11, 0), End: msk(12, 11, 30), Kind: domain.VisitLecture, Guests: 3},
	}}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneGerman,
		VisitType:       domain.VisitLecture,
		DurationMinutes: 30,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	first := resp.Slots[0]
	assert.Equal(t, msk(12, 11, 0), first.Start)
	assert.Equal(t, msk(12, 11, 30), first.End)
	assert.Equal(t, 5, first.BookedGuests)
	assert.Equal(t, 3, first.AvailableSpots)
	assert.Equal(t, 8, first.TotalSpots)

	// Вторая половина часа: часовая лекция продолжается, получасовая закончилась
	second := resp.Slots[1]
	assert.Equal(t, msk(12, 11, 30), second.Start)
	assert.Equal(t, 2, second.BookedGuests)
	assert.Equal(t, 6, second.AvailableSpots)
}

// Часовой кандидат оценивается как максимум занятости по его половинам:
// часовая запись не считается дважды
func TestExecute_LectureHourlyMaxOfHalves(t *testing.T) {
	cal := &fakeCalendar{reservations: []*domain.Reservation{
		{Start: msk(12, 11, 0), End: msk(12, 12, 0), Kind: domain.VisitLecture, Guests: 4},
		{Start: msk(12, 11, 30), End: msk(12, 12, 0), Kind: domain.VisitLecture, Guests: 2},
	}}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitLecture,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	first := resp.Slots[0]
	assert.Equal(t, msk(12, 11, 0), first.Start)
	// max(4, 4+2) = 6, а не 4+4+2
	assert.Equal(t, 6, first.BookedGuests)
	assert.Equal(t, 4, first.AvailableSpots)
}

func TestExecute_LectureFullCapacityDropped(t *testing.T) {
	cal := &fakeCalendar{reservations: []*domain.Reservation{
		{Start: msk(12, 11, 0), End: msk(12, 12, 0), Kind: domain.VisitLecture, Guests: 10},
	}}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitLecture,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{12, 13, 14, 17, 18, 19, 20}, slotStartHours(resp.Slots))
}

func TestExecute_LectureBlockedByTherapy(t *testing.T) {
	cal := &fakeCalendar{reservations: []*domain.Reservation{
		{Start: msk(12, 13, 0), End: msk(12, 14, 0), Kind: domain.VisitTherapy},
	}}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneGerman,
		VisitType:       domain.VisitLecture,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)

	assert.NotContains(t, slotStartHours(resp.Slots), 13)
}

func TestExecute_TodayFiltersPastSlots(t *testing.T) {
	cal := &fakeCalendar{}
	uc := newTestUseCase(cal, msk(12, 14, 30))

	resp, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	require.NoError(t, err)

	// 14:00 уже начался, 15:00 и 16:00 — блэкаут
	assert.Equal(t, []int{17, 18, 19, 20}, slotStartHours(resp.Slots))
}

func TestExecute_PastOperatingHours(t *testing.T) {
	cal := &fakeCalendar{}
	uc := newTestUseCase(cal, msk(12, 21, 5))

	_, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	assert.ErrorIs(t, err, ErrPastOperatingHours)
	assert.Zero(t, cal.calls)
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newTestUseCase(&fakeCalendar{}, msk(12, 12, 0))

	_, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(11, 0, 0),
	})
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(27, 0, 0),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newTestUseCase(&fakeCalendar{}, msk(10, 12, 0))

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown commune", Request{Commune: "french", VisitType: domain.VisitTherapy, DurationMinutes: 60, Date: msk(12, 0, 0)}},
		{"unknown visit type", Request{Commune: domain.CommuneAmerican, VisitType: "massage", DurationMinutes: 60, Date: msk(12, 0, 0)}},
		{"therapy 30 minutes", Request{Commune: domain.CommuneAmerican, VisitType: domain.VisitTherapy, DurationMinutes: 30, Date: msk(12, 0, 0)}},
		{"lecture 45 minutes", Request{Commune: domain.CommuneAmerican, VisitType: domain.VisitLecture, DurationMinutes: 45, Date: msk(12, 0, 0)}},
		{"zero date", Request{Commune: domain.CommuneAmerican, VisitType: domain.VisitTherapy, DurationMinutes: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CalendarUnavailable(t *testing.T) {
	cal := &fakeCalendar{err: calendarClient.ErrUnavailable}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	_, err := uc.Execute(context.Background(), &Request{
		Commune:         domain.CommuneAmerican,
		VisitType:       domain.VisitTherapy,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	})
	assert.ErrorIs(t, err, ErrCalendarUnavailable)
}

// Повторный запрос без изменений в календаре возвращает тот же результат
func TestExecute_Idempotent(t *testing.T) {
	cal := &fakeCalendar{reservations: []*domain.Reservation{
		{Start: msk(12, 13, 0), End: msk(12, 14, 0), Kind: domain.VisitTherapy},
		{Start: msk(12, 17, 0), End: msk(12, 18, 0), Kind: domain.VisitLecture, Guests: 4},
	}}
	uc := newTestUseCase(cal, msk(10, 12, 0))

	req := &Request{
		Commune:         domain.CommuneGerman,
		VisitType:       domain.VisitLecture,
		DurationMinutes: 60,
		Date:            msk(12, 0, 0),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, cal.calls)
}

func TestExecute_SlotsWithinOperatingWindow(t *testing.T) {
	uc := newTestUseCase(&fakeCalendar{}, msk(10, 12, 0))

	for _, duration := range []int{60, 30} {
		resp, err := uc.Execute(context.Background(), &Request{
			Commune:         domain.CommuneGerman,
			VisitType:       domain.VisitLecture,
			DurationMinutes: duration,
			Date:            msk(12, 0, 0),
		})
		require.NoError(t, err)

		for i, s := range resp.Slots {
			assert.False(t, s.Start.Hour() < domain.OpenHour || s.Start.Hour() >= domain.CloseHour)
			assert.False(t, domain.IsBlackoutHour(s.Start.Hour()))
			assert.Equal(t, duration, int(s.End.Sub(s.Start)/time.Minute))
			if i > 0 {
				assert.True(t, resp.Slots[i-1].Start.Before(s.Start))
			}
		}
	}
}
