package domain

import (
	"fmt"
	"time"
)

// BookingRequest заявка на запись, накапливаемая по ходу диалога.
// Живет только в рамках одной беседы: при отмене или перезапуске
// процесса теряется, постоянного хранилища заявок нет.
type BookingRequest struct {
	Commune         Commune
	VisitType       VisitType
	DurationMinutes int
	Date            time.Time
	Slot            TimeSlot

	Name      string
	Headcount int
	Children  int
	Phone     string
}

// Complete проверяет, что все поля заявки заполнены и она готова к отправке
func (r *BookingRequest) Complete() bool {
	return r.Commune != "" &&
		r.VisitType != "" &&
		r.DurationMinutes > 0 &&
		!r.Date.IsZero() &&
		!r.Slot.Start.IsZero() &&
		r.Name != "" &&
		r.Headcount > 0 &&
		r.Phone != ""
}

// EventSummary заголовок события календаря: "Имя+N", где N размер группы
func (r *BookingRequest) EventSummary() string {
	return fmt.Sprintf("%s+%d", r.Name, r.Headcount)
}
