package get_free_slots

import (
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// Request модель запроса свободных слотов на день
type Request struct {
	ChatID          int64            // ID чата (для логирования, на результат не влияет)
	Commune         domain.Commune   // Коммуна
	VisitType       domain.VisitType // Тип посещения
	DurationMinutes int              // Шаг сетки: 60 для терапии, 60 или 30 для лекций
	Date            time.Time        // День, на который запрашиваются слоты
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Commune   domain.Commune
	VisitType domain.VisitType
	Date      time.Time
	Slots     []Slot // Свободные слоты по возрастанию времени начала
}

// Slot свободный слот с информацией о занятости
type Slot struct {
	Start time.Time
	End   time.Time

	// BookedGuests суммарное число гостей лекций, уже записанных на
	// пересекающиеся интервалы. Для терапии всегда 0.
	BookedGuests int

	// AvailableSpots свободная вместимость слота:
	// для терапии 1, для лекций вместимость коммуны минус BookedGuests
	AvailableSpots int

	// TotalSpots полная вместимость слота
	TotalSpots int
}
