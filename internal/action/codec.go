package action

import (
	"encoding/json"
	"fmt"
)

// Encode serialises actions as a JSON array of plain records.
func Encode(actions []Action) ([]byte, error) {
	if actions == nil {
		actions = []Action{}
	}
	data, err := json.Marshal(actions)
	if err != nil {
		return nil, fmt.Errorf("encode actions: %w", err)
	}
	return data, nil
}

// Decode parses a JSON action list. Records are returned as stored; callers
// decide what to do with entries that fail Valid.
func Decode(data []byte) ([]Action, error) {
	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	for i := range actions {
		actions[i].normalize()
	}
	return actions, nil
}
