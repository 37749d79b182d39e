package domain

import (
	"errors"
	"time"
)

// SlotKind тип содержимого временного слота
type SlotKind string

const (
	SlotTherapy SlotKind = "therapy"
	SlotLecture SlotKind = "lecture"
	SlotFree    SlotKind = "free"
)

// ErrInvalidInterval возвращается при попытке создать слот с некорректными границами
var ErrInvalidInterval = errors.New("domain: slot start must be before end")

// TimeSlot временной интервал с метаданными посещения.
// Значение неизменяемо после создания.
type TimeSlot struct {
	Start time.Time
	End   time.Time
	Kind  SlotKind
	Label string

	// GuestCount имеет смысл только для лекций: суммарное число гостей,
	// уже записанных на пересекающиеся интервалы
	GuestCount int
}

// NewTimeSlot создает слот, проверяя инвариант start < end
func NewTimeSlot(start, end time.Time, kind SlotKind, label string) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidInterval
	}
	return TimeSlot{Start: start, End: end, Kind: kind, Label: label}, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов [Start, End).
// Граничащие интервалы (конец одного равен началу другого) не пересекаются.
// Сравнение по равенству начал здесь намеренно не используется: оно не
// замечает конфликтов с событиями, начинающимися не по сетке.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return Overlap(s.Start, s.End, other.Start, other.End)
}

// Overlap предикат пересечения полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
func Overlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DurationMinutes длительность слота в минутах
func (s TimeSlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
