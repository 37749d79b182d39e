package get_free_slots

import (
	"context"
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// CalendarClient интерфейс адаптера календаря (только чтение)
type CalendarClient interface {
	// ListDay возвращает записи коммуны в интервале [from, to)
	ListDay(ctx context.Context, commune domain.Commune, from, to time.Time) ([]*domain.Reservation, error)
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
