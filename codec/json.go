package codec

import "encoding/json"

// JSON serializes values with encoding/json, using the snake_case field names
// from the schema (the message structs carry the tags). Not wire-compatible
// with the arm; intended for logs and debugging dumps.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
