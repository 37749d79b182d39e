package calendar

import "errors"

var (
	// ErrUnavailable возвращается, когда Calendar API недоступен или отклонил вызов.
	// Список слотов в этом случае считается неизвестным, а не пустым.
	ErrUnavailable = errors.New("calendar: backend unavailable")

	// ErrInvalidCredentials возвращается, когда токен или credentials коммуны
	// не удалось загрузить. Токены создаются отдельно, вне бота.
	ErrInvalidCredentials = errors.New("calendar: invalid credentials")

	// ErrUnknownCommune возвращается при обращении к коммуне без настроенного календаря
	ErrUnknownCommune = errors.New("calendar: unknown commune")
)
