package get_free_slots

import (
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// dayWindow возвращает границы рабочего окна дня в московском времени
func dayWindow(date time.Time) (open, close time.Time) {
	year, month, day := date.Date()
	open = time.Date(year, month, day, domain.OpenHour, 0, 0, 0, domain.Moscow)
	close = time.Date(year, month, day, domain.CloseHour, 0, 0, 0, domain.Moscow)
	return open, close
}

// effectiveWindowStart возвращает фактическое начало окна запроса:
// для сегодняшнего дня это текущий момент, для будущих дней — время открытия.
// Если рабочее окно сегодняшнего дня уже закончилось, возвращает
// ErrPastOperatingHours: для корректного сообщения пользователю важно
// отличать "день закончился" от "все занято".
func effectiveWindowStart(date, now time.Time) (time.Time, error) {
	open, close := dayWindow(date)
	if !isSameDay(date, now) {
		return open, nil
	}
	if !now.Before(close) {
		return time.Time{}, ErrPastOperatingHours
	}
	if now.After(open) {
		return now, nil
	}
	return open, nil
}

// candidate кандидатный интервал сетки
type candidate struct {
	start time.Time
	end   time.Time
}

// generateCandidates строит сетку кандидатов на день: по одному слоту на
// каждый рабочий час (либо по два получасовых), часы блэкаута пропускаются
func generateCandidates(date time.Time, durationMinutes int) []candidate {
	var candidates []candidate
	year, month, day := date.Date()

	for hour := domain.OpenHour; hour < domain.CloseHour; hour++ {
		if domain.IsBlackoutHour(hour) {
			continue
		}
		hourStart := time.Date(year, month, day, hour, 0, 0, 0, domain.Moscow)

		if durationMinutes == domain.LectureHalfDurationMinutes {
			half := hourStart.Add(30 * time.Minute)
			candidates = append(candidates,
				candidate{start: hourStart, end: half},
				candidate{start: half, end: hourStart.Add(time.Hour)},
			)
			continue
		}
		candidates = append(candidates, candidate{start: hourStart, end: hourStart.Add(time.Hour)})
	}

	return candidates
}

// overlapsAny проверяет пересечение кандидата хотя бы с одной записью
func overlapsAny(c candidate, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if r.OverlapsInterval(c.start, c.end) {
			return true
		}
	}
	return false
}

// overlapsTherapy проверяет пересечение кандидата с терапевтической записью
func overlapsTherapy(c candidate, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if r.Kind == domain.VisitTherapy && r.OverlapsInterval(c.start, c.end) {
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

// candidateGuests считает занятость кандидата гостями лекций.
// Часовой кандидат оценивается как максимум из сумм по его половинам:
// часовая запись, пересекающая обе половины, иначе была бы посчитана дважды.
func candidateGuests(c candidate, reservations []*domain.Reservation) int {
	if c.end.Sub(c.start) <= 30*time.Minute {
		return lectureGuestSum(c.start, c.end, reservations)
	}

	half := c.start.Add(c.end.Sub(c.start) / 2)
	first := lectureGuestSum(c.start, half, reservations)
	second := lectureGuestSum(half, c.end, reservations)
	if first > second {
		return first
	}
	return second
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
