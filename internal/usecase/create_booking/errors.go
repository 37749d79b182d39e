package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrIncompleteRequest возвращается, когда заявка заполнена не полностью
	ErrIncompleteRequest = errors.New("create_booking: booking request is incomplete")

	// ErrInvalidHeadcount возвращается при размере группы вне 1..5
	ErrInvalidHeadcount = errors.New("create_booking: invalid headcount")

	// ErrInvalidChildren возвращается при количестве детей вне 0..5
	ErrInvalidChildren = errors.New("create_booking: invalid children count")

	// ErrInvalidPhone возвращается, когда номер телефона не похож на российский
	ErrInvalidPhone = errors.New("create_booking: invalid phone number")

	// ErrSlotInPast возвращается, когда выбранный слот уже начался
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrSlotTaken возвращается, когда слот уже занят: для терапии любым
	// визитом, для лекции — терапевтическим
	ErrSlotTaken = errors.New("create_booking: slot is taken")

	// ErrCapacityExceeded возвращается, когда группа не помещается в
	// оставшуюся вместимость лекционного слота
	ErrCapacityExceeded = errors.New("create_booking: lecture capacity exceeded")

	// ErrCalendarUnavailable возвращается при недоступности календаря;
	// запись не создана, внутренних повторов нет
	ErrCalendarUnavailable = errors.New("create_booking: calendar unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CapacityError ошибка превышения вместимости с уточнением, сколько мест
// осталось: пользователю предлагается скорректированный максимум
type CapacityError struct {
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("create_booking: lecture capacity exceeded, %d spots remaining", e.Remaining)
}

// Is позволяет сопоставлять ошибку с ErrCapacityExceeded через errors.Is
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
