package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/metrics"
	"github.com/Eursukkul/roomescape-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

type ThemeStore interface {
	Upsert(ctx context.Context, theme *models.Theme) error
}

type TimeStore interface {
	Upsert(ctx context.Context, t *models.Time) error
}

var errMalformed = errors.New("malformed catalog message")

// CatalogConsumer keeps local themes and times in sync with the catalog exchange.
type CatalogConsumer struct {
	themes  ThemeStore
	times   TimeStore
	metrics *metrics.Metrics
}

func NewCatalogConsumer(themes ThemeStore, times TimeStore, m *metrics.Metrics) *CatalogConsumer {
	return &CatalogConsumer{themes: themes, times: times, metrics: m}
}

// Start drains msgs in the background until the channel closes.
func (cc *CatalogConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(ctx, msg)
		}
		log.Println("[CatalogConsumer] channel closed, stopping consumer")
	}()
}

func (cc *CatalogConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	entity, _, _ := strings.Cut(msg.RoutingKey, ".")

	var err error
	switch entity {
	case "theme":
		err = cc.syncTheme(ctx, msg.Body)
	case "time":
		err = cc.syncTime(ctx, msg.Body)
	default:
		err = errMalformed
	}

	if errors.Is(err, errMalformed) {
		log.Printf("[CatalogConsumer] dropping %s message: %v", msg.RoutingKey, err)
		msg.Nack(false, false)
		return
	}
	if err != nil {
		log.Printf("[CatalogConsumer] failed to sync %s: %v", msg.RoutingKey, err)
		msg.Nack(false, true) // requeue
		return
	}

	cc.metrics.Synced(entity)
	msg.Ack(false)
}

func (cc *CatalogConsumer) syncTheme(ctx context.Context, body []byte) error {
	var theme models.Theme
	if err := json.Unmarshal(body, &theme); err != nil {
		return errors.Join(errMalformed, err)
	}
	if theme.ID == 0 || theme.Name == "" {
		return errMalformed
	}

	if err := cc.themes.Upsert(ctx, &theme); err != nil {
		return err
	}
	log.Printf("[CatalogConsumer] synced theme %d: %s", theme.ID, theme.Name)
	return nil
}

func (cc *CatalogConsumer) syncTime(ctx context.Context, body []byte) error {
	var t models.Time
	if err := json.Unmarshal(body, &t); err != nil {
		return errors.Join(errMalformed, err)
	}
	if t.ID == 0 {
		return errMalformed
	}
	if _, err := time.Parse("15:04", t.StartAt); err != nil {
		return errors.Join(errMalformed, err)
	}

	if err := cc.times.Upsert(ctx, &t); err != nil {
		return err
	}
	log.Printf("[CatalogConsumer] synced time %d: %s", t.ID, t.StartAt)
	return nil
}
