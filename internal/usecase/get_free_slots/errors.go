package get_free_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_free_slots: invalid input data")

	// ErrDateInPast возвращается, когда запрошенная дата уже прошла
	ErrDateInPast = errors.New("get_free_slots: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата за горизонтом записи
	ErrDateTooFarInFuture = errors.New("get_free_slots: date is too far in the future")

	// ErrPastOperatingHours возвращается, когда рабочее окно сегодняшнего дня
	// уже закончилось. Отличается от пустого списка: день закончился,
	// а не полностью занят.
	ErrPastOperatingHours = errors.New("get_free_slots: past operating hours for today")

	// ErrCalendarUnavailable возвращается, когда календарь недоступен.
	// Занятость дня в этом случае неизвестна, а не пуста.
	ErrCalendarUnavailable = errors.New("get_free_slots: calendar unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_slots: internal error")
)
