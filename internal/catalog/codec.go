package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const snapshotVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func encodeSlot(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: snapshotVersion, Data: data})
}

// decodeSlot accepts the versioned envelope and, for data written before the
// envelope existed, the bare payload.
func decodeSlot(raw []byte, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return fmt.Errorf("catalog: empty snapshot")
	}

	if raw[0] == '{' {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Version > 0 && len(env.Data) > 0 {
			if env.Version > snapshotVersion {
				return fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
			}
			return json.Unmarshal(env.Data, out)
		}
	}

	return json.Unmarshal(raw, out)
}
