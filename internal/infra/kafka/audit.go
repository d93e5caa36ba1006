package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/infra/config"
)

const schemaVersion = "1.0"

// AuditPublisher implements port.AuditLog by publishing entries to the audit
// topic. Entries are keyed by identity so one account's trail stays ordered
// within a partition.
type AuditPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
	topic    string
}

// NewAuditPublisher constructs a Kafka-backed audit log.
func NewAuditPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *AuditPublisher {
	return &AuditPublisher{
		producer: producer,
		logger:   logger,
		appCfg:   appCfg,
		topic:    producer.cfg.AuditTopic,
	}
}

type auditEnvelope struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Operation string            `json:"operation"`
	Identity  string            `json:"identity"`
	SourceIP  string            `json:"source_ip"`
	Reason    string            `json:"reason,omitempty"`
	Version   string            `json:"version"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Record publishes a single audit entry.
func (p *AuditPublisher) Record(ctx context.Context, entry domain.AuditEntry) error {
	metadata := map[string]string{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := auditEnvelope{
		ID:        entry.ID,
		Timestamp: entry.Timestamp.UTC(),
		Operation: entry.Operation,
		Identity:  entry.Identity,
		SourceIP:  entry.SourceIP,
		Reason:    entry.Reason,
		Version:   schemaVersion,
		Metadata:  metadata,
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal audit envelope: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(entry.Identity),
		Value: sarama.ByteEncoder(payload),
	}

	select {
	case p.producer.Producer().Input() <- msg:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue audit entry: %w", ctx.Err())
	}
}

var _ port.AuditLog = (*AuditPublisher)(nil)
