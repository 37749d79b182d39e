package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
	createBooking "github.com/StanleyOneG/ev-registration-bot/internal/usecase/create_booking"
	getFreeSlots "github.com/StanleyOneG/ev-registration-bot/internal/usecase/get_free_slots"
)

// Controller пошаговый диалог записи. Не зависит от транспорта:
// получает текст сообщения, возвращает ответы для отправки.
type Controller struct {
	sessions      *SessionStore
	freeSlots     FreeSlotsUseCase
	createBooking CreateBookingUseCase
	timeProvider  TimeProvider
	logger        Logger
	metrics       MetricsRecorder
}

// NewController создает контроллер диалогов
func NewController(
	freeSlots FreeSlotsUseCase,
	createBooking CreateBookingUseCase,
	logger Logger,
	metrics MetricsRecorder,
) *Controller {
	return &Controller{
		sessions:      NewSessionStore(),
		freeSlots:     freeSlots,
		createBooking: createBooking,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		metrics:       metrics,
	}
}

// HandleMessage обрабатывает одно входящее сообщение чата и возвращает
// ответы. Сообщения одного чата приходят по порядку; разные чаты
// независимы и держат каждое свою сессию.
func (c *Controller) HandleMessage(ctx context.Context, chatID int64, firstName, text string) []Reply {
	text = strings.TrimSpace(text)

	if text == "/cancel" || text == btnCancel {
		return c.cancel(chatID)
	}
	if text == "/start" {
		c.sessions.Delete(chatID)
		c.updateSessionsMetric()
		return []Reply{reply(msgWelcome, []string{btnRegister})}
	}

	session := c.sessions.GetOrCreate(chatID)
	c.updateSessionsMetric()

	switch session.Stage {
	case StageIdle:
		return c.handleIdle(session, firstName, text)
	case StageCommune:
		return c.handleCommune(session, text)
	case StageVisitType:
		return c.handleVisitType(session, text)
	case StageDuration:
		return c.handleDuration(session, text)
	case StageDate:
		return c.handleDate(ctx, session, text)
	case StageSlot:
		return c.handleSlot(session, text)
	case StageName:
		return c.handleName(session, text)
	case StageHeadcount:
		return c.handleHeadcount(session, text)
	case StageChildren:
		return c.handleChildren(session, text)
	case StagePhone:
		return c.handlePhone(session, text)
	case StageConfirm:
		return c.handleConfirm(ctx, session, text)
	default:
		return []Reply{replyPlain(msgUnknownChoice)}
	}
}

func (c *Controller) cancel(chatID int64) []Reply {
	session := c.sessions.GetOrCreate(chatID)
	active := session.Stage != StageIdle
	c.sessions.Delete(chatID)
	c.updateSessionsMetric()

	if !active {
		return []Reply{replyPlain(msgNothingToCancel)}
	}
	c.logger.Info("chat=%d cancelled the conversation", chatID)
	return []Reply{replyPlain(msgCancelled)}
}

func (c *Controller) handleIdle(session *Session, firstName, text string) []Reply {
	if text != btnRegister && text != "/register" {
		return []Reply{reply(msgWelcome, []string{btnRegister})}
	}

	session.Booking = domain.BookingRequest{Name: strings.TrimSpace(firstName)}
	session.Stage = StageCommune
	return []Reply{reply(msgChooseCommune, communeKeyboard()...)}
}

func (c *Controller) handleCommune(session *Session, text string) []Reply {
	commune, err := domain.ParseCommune(text)
	if err != nil {
		return []Reply{reply(msgUnknownChoice, communeKeyboard()...)}
	}

	session.Booking.Commune = commune
	session.Stage = StageVisitType
	return []Reply{reply(msgChooseVisitType, visitTypeKeyboard()...)}
}

func (c *Controller) handleVisitType(session *Session, text string) []Reply {
	switch text {
	case domain.VisitTherapy.DisplayName():
		session.Booking.VisitType = domain.VisitTherapy
		session.Booking.DurationMinutes = domain.TherapyDurationMinutes
		session.Stage = StageDate
		return []Reply{reply(msgChooseDate, dateKeyboard(c.now())...)}

	case domain.VisitLecture.DisplayName():
		session.Booking.VisitType = domain.VisitLecture
		session.Stage = StageDuration
		return []Reply{reply(msgChooseDuration, durationKeyboard()...)}

	default:
		return []Reply{reply(msgUnknownChoice, visitTypeKeyboard()...)}
	}
}

func (c *Controller) handleDuration(session *Session, text string) []Reply {
	switch text {
	case btnHourLecture:
		session.Booking.DurationMinutes = domain.LectureFullDurationMinutes
	case btnHalfLecture:
		session.Booking.DurationMinutes = domain.LectureHalfDurationMinutes
	default:
		return []Reply{reply(msgUnknownChoice, durationKeyboard()...)}
	}

	session.Stage = StageDate
	return []Reply{reply(msgChooseDate, dateKeyboard(c.now())...)}
}

func (c *Controller) handleDate(ctx context.Context, session *Session, text string) []Reply {
	date, err := time.ParseInLocation(domain.DateFormat, text, domain.Moscow)
	if err != nil {
		return []Reply{reply(msgBadDate, dateKeyboard(c.now())...)}
	}

	resp, err := c.freeSlots.Execute(ctx, &getFreeSlots.Request{
		ChatID:          session.ChatID,
		Commune:         session.Booking.Commune,
		VisitType:       session.Booking.VisitType,
		DurationMinutes: session.Booking.DurationMinutes,
		Date:            date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrPastOperatingHours):
			return []Reply{reply(msgDayOver, dateKeyboard(c.now())...)}
		case errors.Is(err, getFreeSlots.ErrDateInPast),
			errors.Is(err, getFreeSlots.ErrDateTooFarInFuture):
			return []Reply{reply(msgDateUnavailable, dateKeyboard(c.now())...)}
		case errors.Is(err, getFreeSlots.ErrCalendarUnavailable):
			return []Reply{reply(msgBackendDown, dateKeyboard(c.now())...)}
		default:
			c.logger.Error("chat=%d free slots failed: %v", session.ChatID, err)
			return []Reply{reply(msgBackendDown, dateKeyboard(c.now())...)}
		}
	}

	if c.metrics != nil {
		c.metrics.IncSlotQuery(string(session.Booking.Commune), string(session.Booking.VisitType))
	}

	if len(resp.Slots) == 0 {
		return []Reply{reply(msgNoSlots, dateKeyboard(c.now())...)}
	}

	session.Booking.Date = date
	session.Offered = resp.Slots
	session.Stage = StageSlot
	return []Reply{reply(msgChooseSlot, slotKeyboard(resp.Slots, session.Booking.VisitType)...)}
}

func (c *Controller) handleSlot(session *Session, text string) []Reply {
	for _, s := range session.Offered {
		if slotLabel(s, session.Booking.VisitType) != text {
			continue
		}

		kind := domain.SlotTherapy
		if session.Booking.VisitType == domain.VisitLecture {
			kind = domain.SlotLecture
		}
		slot, err := domain.NewTimeSlot(s.Start, s.End, kind, text)
		if err != nil {
			c.logger.Error("chat=%d invalid offered slot: %v", session.ChatID, err)
			continue
		}
		session.Booking.Slot = slot

		if session.Booking.Name == "" {
			session.Stage = StageName
			return []Reply{replyPlain(msgAskName)}
		}
		session.Stage = StageHeadcount
		return []Reply{replyPlain(msgAskHeadcount)}
	}

	return []Reply{reply(msgUnknownChoice, slotKeyboard(session.Offered, session.Booking.VisitType)...)}
}

func (c *Controller) handleName(session *Session, text string) []Reply {
	name := strings.TrimSpace(text)
	if name == "" {
		return []Reply{replyPlain(msgAskName)}
	}
	session.Booking.Name = name
	session.Stage = StageHeadcount
	return []Reply{replyPlain(msgAskHeadcount)}
}

func (c *Controller) handleHeadcount(session *Session, text string) []Reply {
	n, err := strconv.Atoi(text)
	if err != nil || n < domain.MinHeadcount || n > domain.MaxHeadcount {
		return []Reply{replyPlain(msgBadHeadcount)}
	}

	// Для лекций размер группы сразу сверяется с предложенной
	// вместимостью слота; финальная проверка все равно будет
	// перед созданием события
	if session.Booking.VisitType == domain.VisitLecture {
		if remaining := c.offeredRemaining(session); remaining > 0 && n > remaining {
			return []Reply{replyPlain(fmt.Sprintf(
				"В этом слоте свободно только %d мест. Укажите количество гостей не больше %d.",
				remaining, remaining))}
		}
	}

	session.Booking.Headcount = n
	session.Stage = StageChildren
	return []Reply{replyPlain(msgAskChildren)}
}

func (c *Controller) handleChildren(session *Session, text string) []Reply {
	n, err := strconv.Atoi(text)
	if err != nil || n < domain.MinChildren || n > domain.MaxChildren {
		return []Reply{replyPlain(msgBadChildren)}
	}

	session.Booking.Children = n
	session.Stage = StagePhone
	return []Reply{replyPlain(msgAskPhone)}
}

func (c *Controller) handlePhone(session *Session, text string) []Reply {
	phone := strings.TrimSpace(text)
	if !domain.PhoneRe.MatchString(phone) {
		return []Reply{replyPlain(msgBadPhone)}
	}

	session.Booking.Phone = phone
	session.Stage = StageConfirm
	return []Reply{reply(confirmText(&session.Booking), confirmKeyboard()...)}
}

func (c *Controller) handleConfirm(ctx context.Context, session *Session, text string) []Reply {
	if text != btnConfirm {
		return []Reply{reply(confirmText(&session.Booking), confirmKeyboard()...)}
	}

	resp, err := c.createBooking.Execute(ctx, &createBooking.Request{
		ChatID:  session.ChatID,
		Booking: session.Booking,
	})
	if err != nil {
		var capacityErr *createBooking.CapacityError
		switch {
		case errors.As(err, &capacityErr):
			session.Stage = StageHeadcount
			return []Reply{replyPlain(fmt.Sprintf(
				"Пока вы заполняли заявку, часть мест заняли: свободно %d. Укажите количество гостей заново.",
				capacityErr.Remaining))}

		case errors.Is(err, createBooking.ErrSlotTaken),
			errors.Is(err, createBooking.ErrSlotInPast):
			session.Stage = StageDate
			return []Reply{reply(msgSlotGone+" "+msgChooseDate, dateKeyboard(c.now())...)}

		case errors.Is(err, createBooking.ErrInvalidPhone):
			session.Stage = StagePhone
			return []Reply{replyPlain(msgBadPhone)}

		case errors.Is(err, createBooking.ErrCalendarUnavailable):
			// Недоступность календаря на финальном шаге завершает диалог
			c.sessions.Delete(session.ChatID)
			c.updateSessionsMetric()
			return []Reply{replyPlain(msgBackendDownFin)}

		default:
			c.logger.Error("chat=%d create booking failed: %v", session.ChatID, err)
			c.sessions.Delete(session.ChatID)
			c.updateSessionsMetric()
			return []Reply{replyPlain(msgBackendDownFin)}
		}
	}

	if c.metrics != nil {
		c.metrics.IncBookingCreated(string(resp.Commune), string(resp.VisitType))
	}

	booking := session.Booking
	c.sessions.Delete(session.ChatID)
	c.updateSessionsMetric()
	return []Reply{replyPlain(successText(&booking))}
}

// offeredRemaining возвращает вместимость выбранного слота из числа предложенных
func (c *Controller) offeredRemaining(session *Session) int {
	for _, s := range session.Offered {
		if s.Start.Equal(session.Booking.Slot.Start) && s.End.Equal(session.Booking.Slot.End) {
			return s.AvailableSpots
		}
	}
	return 0
}

func (c *Controller) now() time.Time {
	return c.timeProvider.Now().In(domain.Moscow)
}

func (c *Controller) updateSessionsMetric() {
	if c.metrics != nil {
		c.metrics.SetActiveSessions(c.sessions.Len())
	}
}
