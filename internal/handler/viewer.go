package handler

import (
	"bytes"
	"encoding/json"
	"strings"

	"dash0times/internal/model"
)

const ViewerHeader = "x-demo-user"

// parseViewer turns the x-demo-user header into the viewer echoed in
// responses. A JSON object is passed through as sent; anything else,
// including JSON that fails to decode, becomes a free-plan viewer whose id is
// the raw value.
func parseViewer(raw string) json.RawMessage {
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "{") {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(raw)); err == nil {
			return buf.Bytes()
		}
	}

	fallback, _ := json.Marshal(model.Viewer{ID: raw, Plan: model.PlanFree})
	return fallback
}
