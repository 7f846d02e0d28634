package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from the EventType, never supplied by callers.
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

var EventSeverityMap = map[EventType]Severity{
	EventLoginSuccess: SeverityINFO,

	EventDataExport:        SeverityMEDIUM,
	EventRecruiterVerified: SeverityMEDIUM,
	EventUserCreated:       SeverityMEDIUM,

	EventLoginFailed:        SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventFileRejected:       SeverityWARN,
	EventForbiddenAccess:    SeverityWARN,

	EventLoginBlocked:      SeverityHIGH,
	EventBlockCreated:      SeverityHIGH,
	EventMalwareDetected:   SeverityHIGH,
	EventRoleModified:      SeverityHIGH,
	EventUserDeleted:       SeverityHIGH,
	EventUserStatusChanged: SeverityHIGH,
}

// GetSeverity returns the severity for an event type, MEDIUM when unmapped.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

func severityLevel(severity Severity) zapcore.Level {
	switch severity {
	case SeverityINFO, SeverityMEDIUM:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
