package bot

import (
	"context"
	"time"

	createBooking "github.com/StanleyOneG/ev-registration-bot/internal/usecase/create_booking"
	getFreeSlots "github.com/StanleyOneG/ev-registration-bot/internal/usecase/get_free_slots"
)

// FreeSlotsUseCase интерфейс use case расчета свободных слотов
type FreeSlotsUseCase interface {
	Execute(ctx context.Context, req *getFreeSlots.Request) (*getFreeSlots.Response, error)
}

// CreateBookingUseCase интерфейс use case создания записи
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс для метрик диалогов. Может быть nil.
type MetricsRecorder interface {
	IncSlotQuery(commune, visitType string)
	IncBookingCreated(commune, visitType string)
	SetActiveSessions(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
