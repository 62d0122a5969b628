package stream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Encode serializes an event into its SSE wire frame: an optional
// `event:` line naming the kind, exactly one `data:` line carrying the
// JSON payload, and a terminating blank line. JSON string escaping
// guarantees the data line holds no raw newlines, which the framing
// relies on.
func Encode(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("stream: encode %s payload: %w", evt.Kind, err)
	}

	var buf bytes.Buffer
	if evt.Kind != "" {
		buf.WriteString("event: ")
		buf.WriteString(string(evt.Kind))
		buf.WriteByte('\n')
	}
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString("\n\n")
	return buf.Bytes(), nil
}

// KeepAliveFrame returns an SSE comment frame. Comments keep idle
// connections alive through proxies without reaching the client's event
// listeners.
func KeepAliveFrame(now time.Time) []byte {
	return []byte(fmt.Sprintf(": keepalive %d\n\n", now.Unix()))
}
