package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/StanleyOneG/ev-registration-bot/internal/config"
	"github.com/StanleyOneG/ev-registration-bot/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс для записи метрик вызовов Calendar API.
// Может быть nil, если метрики выключены.
type MetricsRecorder interface {
	ObserveCalendarCall(operation string, seconds float64)
	IncCalendarError(operation string)
}

type communeService struct {
	service    *gcal.Service
	calendarID string
}

// Client адаптер хранилища событий поверх Google Calendar.
// У каждой коммуны свой календарь и свои учетные данные.
type Client struct {
	services map[domain.Commune]communeService
	timeout  time.Duration
	log      Logger
	metrics  MetricsRecorder
}

// NewClient создает адаптер, поднимая по одному Calendar-сервису на коммуну.
// Токены должны быть выпущены заранее (token.json в каталоге коммуны);
// протухший access token обновляется библиотекой oauth2 по refresh token.
func NewClient(ctx context.Context, cfg config.CalendarConfig, log Logger, metrics MetricsRecorder) (*Client, error) {
	dirs := map[domain.Commune]config.CommuneCalendar{
		domain.CommuneAmerican: cfg.American,
		domain.CommuneGerman:   cfg.German,
	}

	services := make(map[domain.Commune]communeService, len(dirs))
	for commune, communeCfg := range dirs {
		srv, err := newCalendarService(ctx, communeCfg.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("calendar: init %s: %w", commune, err)
		}
		services[commune] = communeService{service: srv, calendarID: communeCfg.CalendarID}
		log.Info("Calendar service initialized for commune=%s (config_dir=%s)", commune, communeCfg.ConfigDir)
	}

	return &Client{
		services: services,
		timeout:  time.Duration(cfg.RequestTimeout) * time.Second,
		log:      log,
		metrics:  metrics,
	}, nil
}

func newCalendarService(ctx context.Context, configDir string) (*gcal.Service, error) {
	credsPath := filepath.Join(configDir, "credentials.json")
	b, err := os.ReadFile(credsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidCredentials, credsPath, err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidCredentials, credsPath, err)
	}

	token, err := tokenFromFile(filepath.Join(configDir, "token.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: load token: %v", ErrInvalidCredentials, err)
	}

	httpClient := oauthCfg.Client(ctx, token)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrInvalidCredentials, err)
	}
	return srv, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

// ListDay возвращает записи коммуны в полуоткрытом интервале [from, to),
// упорядоченные по времени начала. События, созданные не ботом
// (описание без маркера типа посещения), отбрасываются.
func (c *Client) ListDay(ctx context.Context, commune domain.Commune, from, to time.Time) ([]*domain.Reservation, error) {
	cs, ok := c.services[commune]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommune, commune)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	events, err := cs.service.Events.List(cs.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		Context(ctx).
		Do()
	c.observe("list", started, err)
	if err != nil {
		c.log.Error("ListDay: commune=%s: %v", commune, err)
		return nil, fmt.Errorf("%w: list events: %v", ErrUnavailable, err)
	}

	reservations := make([]*domain.Reservation, 0, len(events.Items))
	for _, item := range events.Items {
		res, ok := c.toReservation(item)
		if !ok {
			continue
		}
		reservations = append(reservations, res)
	}

	c.log.Info("ListDay: commune=%s, window=[%s, %s), events=%d, recognized=%d",
		commune, from.Format(time.RFC3339), to.Format(time.RFC3339), len(events.Items), len(reservations))
	return reservations, nil
}

// toReservation переводит событие календаря во внутреннюю структуру.
// Разбор текстового описания происходит только здесь.
func (c *Client) toReservation(item *gcal.Event) (*domain.Reservation, bool) {
	// События на весь день (без dateTime) не участвуют в расчете занятости
	if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
		return nil, false
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return nil, false
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return nil, false
	}

	parsed, ok := ParseDescription(item.Description)
	if !ok {
		c.log.Warn("toReservation: skipping foreign event %q", item.Summary)
		return nil, false
	}

	return &domain.Reservation{
		Start:    start.In(domain.Moscow),
		End:      end.In(domain.Moscow),
		Kind:     parsed.VisitType,
		Summary:  item.Summary,
		Children: parsed.Children,
		Phone:    parsed.Phone,
		Guests:   parsed.Guests,
	}, true
}

// Insert создает ровно одно событие. Повторных попыток нет:
// ошибка вставки возвращается вызывающему как есть.
func (c *Client) Insert(ctx context.Context, commune domain.Commune, event Event) error {
	cs, ok := c.services[commune]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommune, commune)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		ColorId:     event.ColorID,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: "Europe/Moscow",
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: "Europe/Moscow",
		},
	}

	started := time.Now()
	created, err := cs.service.Events.Insert(cs.calendarID, body).Context(ctx).Do()
	c.observe("insert", started, err)
	if err != nil {
		c.log.Error("Insert: commune=%s: %v", commune, err)
		return fmt.Errorf("%w: insert event: %v", ErrUnavailable, err)
	}

	c.log.Info("Insert: commune=%s, event created id=%s", commune, created.Id)
	return nil
}

func (c *Client) observe(operation string, started time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveCalendarCall(operation, time.Since(started).Seconds())
	if err != nil {
		c.metrics.IncCalendarError(operation)
	}
}
