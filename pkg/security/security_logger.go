package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventForbiddenAccess    EventType = "forbidden_access"
	EventBlockCreated       EventType = "block_created"
	EventFileRejected       EventType = "file_rejected"
	EventMalwareDetected    EventType = "malware_detected"
	EventUserCreated        EventType = "user_created"
	EventUserDeleted        EventType = "user_deleted"
	EventUserStatusChanged  EventType = "user_status_changed"
	EventRoleModified       EventType = "role_modified"
	EventRecruiterVerified  EventType = "recruiter_verification_changed"
	EventDataExport         EventType = "data_export"
)

// Subject types. Emails are masked and user ids are logged as-is; any other
// subject is hashed.
const (
	SubjectEmail  = "email"
	SubjectIP     = "ip"
	SubjectUserID = "user_id"
	SubjectSystem = "system"
)

// SecurityEvent is one audit record. Severity and level are derived from Event.
type SecurityEvent struct {
	Event        EventType
	SubjectType  string
	SubjectValue string
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]interface{}
}

// SecurityLogger writes security events as structured zap entries, separate
// from the slog application log.
type SecurityLogger struct {
	zap *zap.Logger
}

var (
	defaultMu     sync.Mutex
	defaultLogger *SecurityLogger
)

// InitSecurityLogger builds the process wide security logger and makes it
// the default.
func InitSecurityLogger(serviceName, environment string) *SecurityLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		base, _ = zap.NewProduction()
	}

	sl := NewSecurityLogger(base, serviceName, environment)

	defaultMu.Lock()
	defaultLogger = sl
	defaultMu.Unlock()
	return sl
}

// DefaultLogger returns the logger set by InitSecurityLogger, or a
// development logger when none was initialized.
func DefaultLogger() *SecurityLogger {
	defaultMu.Lock()
	sl := defaultLogger
	defaultMu.Unlock()
	if sl != nil {
		return sl
	}
	return NewSecurityLogger(zap.NewNop(), "carebridge-backend", "development")
}

// NewSecurityLogger wraps an existing zap logger.
func NewSecurityLogger(base *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zap: base.With(zap.String("service", serviceName), zap.String("env", environment)),
	}
}

func (sl *SecurityLogger) Log(_ context.Context, event SecurityEvent) {
	severity := GetSeverity(event.Event)

	fields := make([]zap.Field, 0, 8)
	fields = append(fields,
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
	)
	fields = appendNonEmpty(fields, "subject_type", event.SubjectType)
	fields = appendNonEmpty(fields, "subject_value", maskValue(event.SubjectType, event.SubjectValue))
	fields = appendNonEmpty(fields, "ip", event.IP)
	fields = appendNonEmpty(fields, "user_agent", event.UserAgent)
	fields = appendNonEmpty(fields, "request_id", event.RequestID)
	if len(event.Details) > 0 {
		details, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(details)))
	}

	sl.zap.Log(severityLevel(severity), string(event.Event), fields...)
}

func appendNonEmpty(fields []zap.Field, key, value string) []zap.Field {
	if value == "" {
		return fields
	}
	return append(fields, zap.String(key, value))
}

func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, ip, userAgent, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  SubjectEmail,
		SubjectValue: email,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"reason": reason},
	})
}

func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, email, ip, userAgent, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  SubjectEmail,
		SubjectValue: email,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"reason": "too_many_failed_attempts"},
	})
}

func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, userID uint, ip, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginSuccess,
		SubjectType:  SubjectUserID,
		SubjectValue: strconv.FormatUint(uint64(userID), 10),
		IP:           ip,
		RequestID:    requestID,
	})
}

func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  SubjectIP,
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

func (sl *SecurityLogger) LogBlockCreated(ctx context.Context, subjectType, subjectValue, ip, requestID string, durationMinutes int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  subjectType,
		SubjectValue: subjectValue,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"duration_minutes": durationMinutes},
	})
}

// LogForbidden records an authenticated request rejected by a role guard.
func (sl *SecurityLogger) LogForbidden(ctx context.Context, userID uint, role, ip, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventForbiddenAccess,
		SubjectType:  SubjectUserID,
		SubjectValue: strconv.FormatUint(uint64(userID), 10),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"role": role, "endpoint": endpoint},
	})
}

// LogAdminAction records a privileged change made by actorID to targetID.
func (sl *SecurityLogger) LogAdminAction(ctx context.Context, event EventType, actorID, targetID uint, details map[string]interface{}) {
	merged := make(map[string]interface{}, len(details)+1)
	for k, v := range details {
		merged[k] = v
	}
	merged["target_id"] = targetID

	sl.Log(ctx, SecurityEvent{
		Event:        event,
		SubjectType:  SubjectUserID,
		SubjectValue: strconv.FormatUint(uint64(actorID), 10),
		Details:      merged,
	})
}

func (sl *SecurityLogger) Sync() error {
	return sl.zap.Sync()
}

// MaskEmail keeps the first character and the domain: "j***@example.com".
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***" + email[1:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue returns the first 16 hex characters of the value's SHA-256.
func HashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}

func maskValue(subjectType, value string) string {
	if value == "" {
		return ""
	}
	switch subjectType {
	case SubjectEmail:
		return MaskEmail(value)
	case SubjectIP, SubjectUserID, SubjectSystem:
		return value
	default:
		return HashValue(value)
	}
}
