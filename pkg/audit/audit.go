package audit

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventApplicationSubmitted EventType = "application_submitted"
	EventStatusChanged        EventType = "application_status_changed"
	EventTransitionDenied     EventType = "application_transition_denied"
	EventJobClosed            EventType = "job_closed"
	EventScoringDegraded      EventType = "scoring_degraded"
)

// Event is a single audit-trail entry. Hiring decisions are reviewable, so
// every submission and status change is logged with the acting user.
type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	Event         EventType `json:"event"`
	ActorID       string    `json:"actor_id,omitempty"`
	ApplicationID int64     `json:"application_id,omitempty"`
	JobID         int64     `json:"job_id,omitempty"`
	FromStatus    string    `json:"from_status,omitempty"`
	ToStatus      string    `json:"to_status,omitempty"`
	Score         int       `json:"score,omitempty"`
	Detail        string    `json:"detail,omitempty"`
}

// Logger provides structured logging of audit events via Zap
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
}

var defaultLogger *Logger

// Init initializes the audit logger with Zap
func Init(serviceName string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	l := &Logger{zapLogger: logger, serviceName: serviceName}
	defaultLogger = l
	return l
}

// Default returns the process-wide audit logger, initializing one if needed
func Default() *Logger {
	if defaultLogger == nil {
		return Init("jobportal-backend")
	}
	return defaultLogger
}

// Log writes an audit event
func (l *Logger) Log(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("event", string(event.Event)),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.ApplicationID != 0 {
		fields = append(fields, zap.Int64("application_id", event.ApplicationID))
	}
	if event.JobID != 0 {
		fields = append(fields, zap.Int64("job_id", event.JobID))
	}
	if event.FromStatus != "" {
		fields = append(fields, zap.String("from_status", event.FromStatus))
	}
	if event.ToStatus != "" {
		fields = append(fields, zap.String("to_status", event.ToStatus))
	}
	if event.Event == EventApplicationSubmitted {
		fields = append(fields, zap.Int("score", event.Score))
	}
	if event.Detail != "" {
		fields = append(fields, zap.String("detail", event.Detail))
	}

	switch event.Event {
	case EventTransitionDenied, EventScoringDegraded:
		l.zapLogger.Warn(string(event.Event), fields...)
	default:
		l.zapLogger.Info(string(event.Event), fields...)
	}
}

// Sync flushes buffered log entries, for use on shutdown
func (l *Logger) Sync() {
	_ = l.zapLogger.Sync()
}
