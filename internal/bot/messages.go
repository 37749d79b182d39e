package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
	getFreeSlots "github.com/StanleyOneG/ev-registration-bot/internal/usecase/get_free_slots"
)

// Тексты сообщений бота
const (
	msgWelcome = "Здравствуйте! Я помогу записаться на посещение коммуны.\nНажмите «Записаться», чтобы начать."

	msgChooseCommune   = "Выберите коммуну:"
	msgChooseVisitType = "Выберите тип посещения:"
	msgChooseDuration  = "Выберите длительность лекции:"
	msgChooseDate      = "Выберите дату посещения:"
	msgChooseSlot      = "Выберите время:"
	msgAskName         = "Как вас зовут?"
	msgAskHeadcount    = "Сколько всего гостей придет, включая вас? (от 1 до 5)"
	msgAskChildren     = "Сколько из них детей? (от 0 до 5)"
	msgAskPhone        = "Укажите контактный номер телефона:"

	msgUnknownChoice   = "Не понял ответ. Пожалуйста, воспользуйтесь кнопками."
	msgBadDate         = "Не понял дату. Пожалуйста, выберите дату кнопкой или введите в формате ДД.ММ.ГГГГ."
	msgBadHeadcount    = "Количество гостей должно быть числом от 1 до 5. Попробуйте еще раз."
	msgBadChildren     = "Количество детей должно быть числом от 0 до 5. Попробуйте еще раз."
	msgBadPhone        = "Не похоже на российский номер телефона. Пример: +7 916 123-45-67. Попробуйте еще раз."
	msgNoSlots         = "На этот день свободных слотов нет. Выберите другую дату."
	msgDayOver         = "Рабочее окно на сегодня уже закончилось. Выберите другой день."
	msgDateUnavailable = "На эту дату записаться нельзя. Выберите дату в пределах двух недель."
	msgBackendDown     = "Календарь сейчас недоступен. Попробуйте, пожалуйста, чуть позже."
	msgBackendDownFin  = "Календарь сейчас недоступен, запись не создана. Начните, пожалуйста, заново: /start"
	msgSlotGone        = "Увы, это время уже заняли. Выберите другой слот."
	msgCancelled       = "Запись отменена. Возвращайтесь!"
	msgNothingToCancel = "Сейчас нечего отменять. Начните запись: /start"

	btnRegister = "Записаться"
	btnConfirm  = "Подтвердить"
	btnCancel   = "Отмена"

	btnHourLecture = "60 минут"
	btnHalfLecture = "30 минут"
)

// Reply исходящее сообщение контроллера. Transport-независимо:
// телеграмная обвязка превращает его в сообщение с клавиатурой.
type Reply struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
}

func reply(text string, keyboard ...[]string) Reply {
	return Reply{Text: text, Keyboard: keyboard}
}

func replyPlain(text string) Reply {
	return Reply{Text: text, RemoveKeyboard: true}
}

func communeKeyboard() [][]string {
	row := make([]string, 0, len(domain.Communes()))
	for _, c := range domain.Communes() {
		row = append(row, c.DisplayName())
	}
	return [][]string{row, {btnCancel}}
}

func visitTypeKeyboard() [][]string {
	return [][]string{
		{domain.VisitTherapy.DisplayName(), domain.VisitLecture.DisplayName()},
		{btnCancel},
	}
}

func durationKeyboard() [][]string {
	return [][]string{{btnHourLecture, btnHalfLecture}, {btnCancel}}
}

// dateKeyboard предлагает даты на две недели вперед, по три в ряд
func dateKeyboard(now time.Time) [][]string {
	var rows [][]string
	var row []string
	for i := 0; i <= domain.AdvanceBookingDays; i++ {
		row = append(row, now.AddDate(0, 0, i).Format(domain.DateFormat))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return append(rows, []string{btnCancel})
}

// slotLabel подпись слота на клавиатуре. Для лекций показывается
// оставшаяся вместимость.
func slotLabel(s getFreeSlots.Slot, visitType domain.VisitType) string {
	label := fmt.Sprintf("%s - %s",
		s.Start.Format(domain.TimeFormat), s.End.Format(domain.TimeFormat))
	if visitType == domain.VisitLecture {
		label += fmt.Sprintf(" (мест: %d)", s.AvailableSpots)
	}
	return label
}

func slotKeyboard(slots []getFreeSlots.Slot, visitType domain.VisitType) [][]string {
	var rows [][]string
	var row []string
	for _, s := range slots {
		row = append(row, slotLabel(s, visitType))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return append(rows, []string{btnCancel})
}

func confirmKeyboard() [][]string {
	return [][]string{{btnConfirm, btnCancel}}
}

// confirmText сводка заявки перед подтверждением
func confirmText(b *domain.BookingRequest) string {
	var sb strings.Builder
	sb.WriteString("Проверьте заявку:\n")
	fmt.Fprintf(&sb, "Коммуна: %s\n", b.Commune.DisplayName())
	fmt.Fprintf(&sb, "Тип посещения: %s\n", b.VisitType.DisplayName())
	fmt.Fprintf(&sb, "Дата: %s\n", b.Date.Format(domain.DateFormat))
	fmt.Fprintf(&sb, "Время: %s - %s\n",
		b.Slot.Start.Format(domain.TimeFormat), b.Slot.End.Format(domain.TimeFormat))
	fmt.Fprintf(&sb, "Имя: %s\n", b.Name)
	fmt.Fprintf(&sb, "Гостей: %d (из них детей: %d)\n", b.Headcount, b.Children)
	fmt.Fprintf(&sb, "Телефон: %s", b.Phone)
	return sb.String()
}

// successText сообщение об успешной записи
func successText(b *domain.BookingRequest) string {
	return fmt.Sprintf("Готово! Вы записаны: %s, %s, %s - %s.\nЖдем вас!",
		b.Commune.DisplayName(),
		b.Date.Format(domain.DateFormat),
		b.Slot.Start.Format(domain.TimeFormat),
		b.Slot.End.Format(domain.TimeFormat))
}
