// internal/workers/result.go
package workers

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// writeResult stores v as the task result so it shows up in the inspector.
// Tasks built outside a server have no result writer.
func writeResult(t *asynq.Task, v any) {
	w := t.ResultWriter()
	if w == nil {
		return
	}
	if b, err := json.Marshal(v); err == nil {
		_, _ = w.Write(b)
	}
}
