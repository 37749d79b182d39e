package domain

import (
	"regexp"
	"time"
)

// Рабочее окно коммун: слоты предлагаются с 11:00 до 21:00 по Москве,
// часы 15:00 и 16:00 исключены из генерации свободных слотов
const (
	OpenHour  = 11
	CloseHour = 21
)

// blackoutHours часы, исключённые из рабочего окна
var blackoutHours = map[int]struct{}{
	15: {},
	16: {},
}

// IsBlackoutHour сообщает, исключён ли час из рабочего окна
func IsBlackoutHour(hour int) bool {
	_, ok := blackoutHours[hour]
	return ok
}

// Вместимость лекций по коммунам
const (
	AmericanLectureCapacity = 10
	GermanLectureCapacity   = 8
)

// Длительности слотов в минутах
const (
	TherapyDurationMinutes     = 60
	LectureFullDurationMinutes = 60
	LectureHalfDurationMinutes = 30
)

// Ограничения полей заявки
const (
	MinHeadcount = 1
	MaxHeadcount = 5
	MinChildren  = 0
	MaxChildren  = 5

	// AdvanceBookingDays горизонт записи: дата не дальше двух недель вперёд
	AdvanceBookingDays = 14
)

// Форматы дат и времени в сообщениях бота
const (
	DateFormat = "02.01.2006"
	TimeFormat = "15:04"
)

// PhoneRe российский мобильный или городской номер:
// опциональный префикс +7/7/8, далее 10 цифр с произвольными
// разделителями (пробел, дефис, скобки вокруг кода)
var PhoneRe = regexp.MustCompile(`^(\+7|7|8)?[\s-]?\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{2}[\s-]?\d{2}$`)

// Moscow рабочий часовой пояс системы. Все интервалы слотов и
// границы дня считаются в нём.
var Moscow = mustLoadMoscow()

func mustLoadMoscow() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic("domain: load Europe/Moscow: " + err.Error())
	}
	return loc
}
