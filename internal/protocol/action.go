package protocol

import (
	"encoding/json"
	"fmt"

	"citadels-engine/internal/engine"
)

// EncodeAction writes an action as a flat JSON object carrying its fields
// plus a "tag" naming the variant.
func EncodeAction(a engine.Action) (json.RawMessage, error) {
	if a == nil {
		return nil, fmt.Errorf("encode action: nil action")
	}
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", a.Tag(), err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", a.Tag(), err)
	}
	tag, err := json.Marshal(a.Tag())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", a.Tag(), err)
	}
	fields["tag"] = tag
	return json.Marshal(fields)
}

// DecodeAction reads an action written by EncodeAction. The returned value
// is a pointer to the variant.
func DecodeAction(data []byte) (engine.Action, error) {
	var head struct {
		Tag *engine.ActionTag `json:"tag"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	if head.Tag == nil {
		return nil, fmt.Errorf("decode action: missing tag")
	}
	a, ok := engine.NewAction(*head.Tag)
	if !ok {
		return nil, fmt.Errorf("decode action: no variant for %s", *head.Tag)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("decode %s: %w", *head.Tag, err)
	}
	return a, nil
}
