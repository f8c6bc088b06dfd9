package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns input as T. In-process events already carry the
// concrete struct. Events read back from NATS or the dead-letter file arrive
// as raw JSON or generic maps and are converted through encoding/json.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case T:
		return v, nil
	case nil:
		return result, fmt.Errorf("decode %T: nil payload", result)
	case json.RawMessage:
		return result, json.Unmarshal(v, &result)
	case []byte:
		return result, json.Unmarshal(v, &result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
