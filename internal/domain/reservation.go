package domain

import "time"

// Reservation структурированное представление уже существующей записи,
// восстановленное из события календаря сразу после чтения.
// Текстовый формат описания события разбирается только в адаптере
// календаря; остальной код работает с этой структурой.
type Reservation struct {
	Start   time.Time
	End     time.Time
	Kind    VisitType
	Summary string

	Children int
	Phone    string

	// Guests размер группы этой записи (включая регистрирующегося).
	// Заполняется только для лекций.
	Guests int
}

// OverlapsInterval проверяет пересечение записи с полуоткрытым интервалом [start, end)
func (r *Reservation) OverlapsInterval(start, end time.Time) bool {
	return Overlap(r.Start, r.End, start, end)
}
