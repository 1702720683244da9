package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes one generic structured document: a string-keyed
// mapping of scalars, sequences, and nested mappings. The loader never
// interprets description-language semantics; it only materializes the
// document for the record builders in this package.
func ParseDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// ReadDocument reads and decodes a document from disk.
func ReadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// EncodeDocument serializes a generic structured document, the produce side
// of the registry round trip.
func EncodeDocument(doc map[string]any) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// asInt coerces the numeric representations the document decoder may
// produce into an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asIntSlice(v any) []int {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(seq))
	for _, item := range seq {
		if n, ok := asInt(item); ok {
			out = append(out, n)
		}
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) []any {
	seq, _ := v.([]any)
	return seq
}
