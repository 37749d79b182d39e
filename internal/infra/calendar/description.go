package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// Описание события календаря — единственное место хранения метаданных записи.
// Формат зафиксирован: его читают и уже существующие события, поэтому любое
// изменение обязано оставаться обратно совместимым.
const (
	therapyMarker = "Тип посещения: Терапия"
	lectureMarker = "Тип посещения: Лекция"
)

var (
	childrenRe = regexp.MustCompile(`Кол-во детей: (\d+)`)
	phoneRe    = regexp.MustCompile(`Тел\.: (.+)`)
	guestsRe   = regexp.MustCompile(`Общее кол-во гостей: (\d+)`)
)

// EncodeDescription собирает текст описания события.
// Строка про общее количество гостей добавляется только для лекций.
func EncodeDescription(visitType domain.VisitType, children int, phone string, totalGuests int) string {
	text := fmt.Sprintf(
		"Тип посещения: %s\n\nКол-во детей: %d\n\nТел.: %s\n\nTelegram-bot",
		visitType.DisplayName(), children, phone,
	)
	if visitType == domain.VisitLecture && totalGuests > 0 {
		text += fmt.Sprintf("\n\n(не редактировать) Общее кол-во гостей: %d", totalGuests)
	}
	return text
}

// ParsedDescription метаданные записи, восстановленные из текста описания
type ParsedDescription struct {
	VisitType domain.VisitType
	Children  int
	Phone     string
	Guests    int
}

// ParseDescription разбирает описание события. Второе значение false
// означает, что событие создано не ботом: такие события не классифицируются
// и не учитываются при подсчете занятости.
func ParseDescription(text string) (ParsedDescription, bool) {
	var parsed ParsedDescription

	switch {
	case strings.Contains(text, therapyMarker):
		parsed.VisitType = domain.VisitTherapy
	case strings.Contains(text, lectureMarker):
		parsed.VisitType = domain.VisitLecture
	default:
		return ParsedDescription{}, false
	}

	if m := childrenRe.FindStringSubmatch(text); m != nil {
		parsed.Children, _ = strconv.Atoi(m[1])
	}
	if m := phoneRe.FindStringSubmatch(text); m != nil {
		parsed.Phone = strings.TrimSpace(m[1])
	}
	if m := guestsRe.FindStringSubmatch(text); m != nil {
		parsed.Guests, _ = strconv.Atoi(m[1])
	}

	return parsed, true
}
