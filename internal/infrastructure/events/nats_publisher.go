package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const defaultSubjectPrefix = "futbol.events"

type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// NATSPublisher announces cache refreshes on <prefix>.<event type>.
type NATSPublisher struct {
	conn   msgPublisher
	close  func()
	prefix string
	logger *logging.Logger
}

var _ usecase.EventPublisher = (*NATSPublisher)(nil)

func NewNATSPublisher(cfg NATSConfig, logger *logging.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	wait := cfg.ReconnectWait
	if wait <= 0 {
		wait = 2 * time.Second
	}

	opts := []nats.Option{
		nats.Name("futbol-api"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(wait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	p := newPublisher(nc, cfg.SubjectPrefix, logger)
	p.close = nc.Close
	return p, nil
}

func newPublisher(conn msgPublisher, prefix string, logger *logging.Logger) *NATSPublisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &NATSPublisher{conn: conn, close: func() {}, prefix: prefix, logger: logger}
}

func (p *NATSPublisher) Publish(ctx context.Context, event usecase.Event) error {
	if strings.TrimSpace(event.Type) == "" {
		return fmt.Errorf("event type is required")
	}

	data, err := sonic.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := nats.NewMsg(p.Subject(event.Type))
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		msg.Header.Set("Trace-Id", sc.TraceID().String())
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}

	trace.SpanFromContext(ctx).AddEvent("event.published", trace.WithAttributes(
		attribute.String("event.type", event.Type),
		attribute.Int64("team.id", event.TeamID),
	))
	p.logger.DebugContext(ctx, "event published", "subject", msg.Subject, "team_id", event.TeamID, "count", event.Count)
	return nil
}

func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + "." + eventType
}

func (p *NATSPublisher) Close() {
	p.close()
}
