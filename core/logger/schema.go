package logger

import "strings"

const (
	// LevelDebug represents the debug severity level name.
	LevelDebug = "DEBUG"
	// LevelInfo represents the info severity level name.
	LevelInfo = "INFO"
	// LevelWarn represents the warning severity level name.
	LevelWarn = "WARN"
	// LevelError represents the error severity level name.
	LevelError = "ERROR"
)

func vocab(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// status and outcome are closed vocabularies. An unknown status is kept as written,
// an unknown outcome is dropped from the line.
var (
	statusWords  = vocab("ok", "fail", "skip", "ignored", "rate_limited", "cancelled")
	outcomeWords = vocab("ok", "fail", "stay", "advance", "ignored", "cancelled", "rate_limited")
)

func normalizeLevel(level string) string {
	switch l := strings.ToUpper(level); l {
	case "":
		return LevelInfo
	case "WARNING":
		return LevelWarn
	default:
		return l
	}
}

func normalizeStatus(status string) (string, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return "", false
	}
	_, ok := statusWords[status]
	return status, ok
}

func normalizeOutcome(outcome string) (string, bool) {
	outcome = strings.ToLower(strings.TrimSpace(outcome))
	if _, ok := outcomeWords[outcome]; !ok {
		return "", false
	}
	return outcome, true
}

// defaultKeyOrder groups keys as envelope, request identity, lesson, transport and errors.
var defaultKeyOrder = []string{
	"ts", "level", "component", "event", "status",
	"rid", "rid_full", "ts_unix_nano", "update_id", "user_id", "chat_id", "chat_type",
	"handler", "cb_key", "reason",
	"signal", "step_from", "step", "outcome", "lesson_id", "topic", "shadow_ix",
	"source", "topics", "drill", "sessions",
	"duration_ms", "startup_duration_ms", "messages", "kb", "action", "endpoint",
	"mode", "listen", "public_url", "addr", "service", "task",
	"err", "err_code", "cause", "attempts",
}
