package calendar

import (
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// Event событие для вставки в календарь
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	ColorID     string
}

// Цвета событий Google Calendar: терапия всегда жёлтая,
// лекции различаются по коммунам
const (
	therapyColorID         = "5"
	americanLectureColorID = "7"
	germanLectureColorID   = "1"
)

// EventColor возвращает colorId события для пары (тип посещения, коммуна)
func EventColor(visitType domain.VisitType, commune domain.Commune) string {
	if visitType == domain.VisitTherapy {
		return therapyColorID
	}
	if commune == domain.CommuneAmerican {
		return americanLectureColorID
	}
	return germanLectureColorID
}
