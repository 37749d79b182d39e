package bot

import (
	"sync"

	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
	getFreeSlots "github.com/StanleyOneG/ev-registration-bot/internal/usecase/get_free_slots"
)

// Stage этап диалога записи
type Stage int

const (
	StageIdle Stage = iota
	StageCommune
	StageVisitType
	StageDuration
	StageDate
	StageSlot
	StageName
	StageHeadcount
	StageChildren
	StagePhone
	StageConfirm
)

// Session состояние одного диалога. Заявка накапливается здесь и нигде
// больше: никакого разделяемого между чатами состояния заявки нет,
// при рестарте процесса незавершенные диалоги теряются.
type Session struct {
	ChatID  int64
	Stage   Stage
	Booking domain.BookingRequest

	// Offered слоты, предложенные пользователю на этапе выбора времени;
	// нужны, чтобы сопоставить ответ с конкретным интервалом
	Offered []getFreeSlots.Slot
}

// SessionStore потокобезопасное хранилище сессий по ID чата
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewSessionStore создает пустое хранилище сессий
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// GetOrCreate возвращает сессию чата, создавая её при необходимости
func (s *SessionStore) GetOrCreate(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok {
		session = &Session{ChatID: chatID, Stage: StageIdle}
		s.sessions[chatID] = session
	}
	return session
}

// Delete удаляет сессию чата, отбрасывая незавершенную заявку
func (s *SessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len возвращает число активных сессий
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
