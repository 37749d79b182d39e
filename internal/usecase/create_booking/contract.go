package create_booking

import (
	"context"
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
	calendarClient "github.com/StanleyOneG/ev-registration-bot/internal/infra/calendar"
)

// CalendarClient интерфейс адаптера календаря
type CalendarClient interface {
	// ListDay возвращает записи коммуны в интервале [from, to)
	ListDay(ctx context.Context, commune domain.Commune, from, to time.Time) ([]*domain.Reservation, error)

	// Insert создает ровно одно событие; без внутренних повторов
	Insert(ctx context.Context, commune domain.Commune, event calendarClient.Event) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
