package colors

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

var structuredDisabled atomic.Bool

// Event is one structured debug record, written as a JSON line to stderr.
type Event struct {
	Timestamp string         `json:"timestamp"`
	Component string         `json:"component"`
	Action    string         `json:"action"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// DisableStructuredLogging turns structured events off. The interactive
// browser calls it because JSON lines would corrupt the screen.
func DisableStructuredLogging() {
	structuredDisabled.Store(true)
}

// EnableStructuredLogging turns structured events back on.
func EnableStructuredLogging() {
	structuredDisabled.Store(false)
}

// Structured writes a component/action/status event when debug is enabled.
// It is used for timing catalog loads and watcher reloads.
func Structured(component, action, status string, err error, fields map[string]any) {
	if !DebugEnabled() || structuredDisabled.Load() {
		return
	}

	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Component: component,
		Action:    action,
		Status:    status,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	data, marshalErr := json.Marshal(e)
	if marshalErr != nil {
		data = []byte(fmt.Sprintf(`{"component":%q,"error":%q}`, component, marshalErr.Error()))
	}

	mu.RLock()
	errOut := stderr
	mu.RUnlock()
	fmt.Fprintf(errOut, "%s\n", data)
}

// Since is a helper for the duration field of Structured events.
func Since(start time.Time) map[string]any {
	return map[string]any{"duration_seconds": time.Since(start).Seconds()}
}
