package create_booking

import (
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// Request модель запроса на создание записи.
// Заявка должна быть полностью заполнена и проверена по ходу диалога;
// usecase перед вставкой только перепроверяет диапазоны и занятость слота.
type Request struct {
	ChatID  int64 // ID чата (для логирования)
	Booking domain.BookingRequest
}

// Response модель ответа с созданной записью
type Response struct {
	Commune   domain.Commune
	VisitType domain.VisitType
	Summary   string
	Start     time.Time
	End       time.Time

	// Headcount размер группы, записанный в событие
	Headcount int
}
