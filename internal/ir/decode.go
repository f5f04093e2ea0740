package ir

import (
	"encoding/json"
	"fmt"
)

// Decode parses a serialized IR document.
func Decode(data []byte) (*RootNode, error) {
	var root RootNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode ir: %w", err)
	}
	return &root, nil
}
