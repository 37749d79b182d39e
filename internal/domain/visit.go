package domain

import "fmt"

// VisitType тип посещения коммуны
type VisitType string

const (
	// VisitTherapy индивидуальная терапия: эксклюзивный часовой слот
	VisitTherapy VisitType = "therapy"

	// VisitLecture лекция: слот делится между несколькими записями
	// в пределах вместимости коммуны
	VisitLecture VisitType = "lecture"
)

// DisplayName возвращает название типа посещения для сообщений и описаний событий
func (v VisitType) DisplayName() string {
	switch v {
	case VisitTherapy:
		return "Терапия"
	case VisitLecture:
		return "Лекция"
	default:
		return string(v)
	}
}

// Valid проверяет, что тип посещения известен
func (v VisitType) Valid() bool {
	return v == VisitTherapy || v == VisitLecture
}

// Commune одна из коммун, доступных для записи.
// У каждой коммуны свой календарь и свои правила вместимости.
type Commune string

const (
	CommuneAmerican Commune = "american"
	CommuneGerman   Commune = "german"
)

// Communes возвращает все коммуны в порядке отображения
func Communes() []Commune {
	return []Commune{CommuneAmerican, CommuneGerman}
}

// DisplayName возвращает название коммуны для клавиатур и сообщений
func (c Commune) DisplayName() string {
	switch c {
	case CommuneAmerican:
		return "Американская"
	case CommuneGerman:
		return "Немецкая"
	default:
		return string(c)
	}
}

// LectureCapacity возвращает максимальное суммарное количество гостей лекций,
// которые могут одновременно находиться в коммуне
func (c Commune) LectureCapacity() int {
	switch c {
	case CommuneAmerican:
		return AmericanLectureCapacity
	case CommuneGerman:
		return GermanLectureCapacity
	default:
		return 0
	}
}

// Valid проверяет, что коммуна известна
func (c Commune) Valid() bool {
	return c == CommuneAmerican || c == CommuneGerman
}

// ParseCommune восстанавливает коммуну из строки (ключ или отображаемое имя)
func ParseCommune(s string) (Commune, error) {
	for _, c := range Communes() {
		if s == string(c) || s == c.DisplayName() {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown commune %q", s)
}
