package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/patnr/gofzf/internal/options"
)

// ParseArgs turns key[=value] tokens into an untyped bag. Values go
// through a structured-literal pass first (JSON), falling back to the
// raw string; a bare key means true.
func ParseArgs(tokens []string) map[string]any {
	bag := make(map[string]any, len(tokens))
	for _, tok := range tokens {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			bag[key] = true
			continue
		}
		var parsed any
		if err := json.Unmarshal([]byte(val), &parsed); err == nil {
			bag[key] = parsed
			continue
		}
		bag[key] = val
	}
	return bag
}

// OptionsDecodeError wraps a bag that does not map onto the options
// record.
type OptionsDecodeError struct {
	Cause error
}

func (e *OptionsDecodeError) Error() string {
	return fmt.Sprintf("invalid options: %v", e.Cause)
}

func (e *OptionsDecodeError) Unwrap() error { return e.Cause }

func (e *OptionsDecodeError) InvalidInput() bool { return true }

// decodeOptions maps the parsed bag onto the options record. Keys match
// field names case-insensitively with separators stripped, so
// `search_text=x` and `SearchText=x` both land on SearchText.
func decodeOptions(bag map[string]any, o *options.Options) error {
	if v, ok := bag["search"]; ok {
		if _, explicit := bag["search_text"]; !explicit {
			bag["search_text"] = v
		}
		delete(bag, "search")
	}
	// The finder key selects the binary in main; it is not an options
	// field.
	delete(bag, "finder")

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           o,
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			return strings.EqualFold(normalizeKey(mapKey), fieldName)
		},
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(bag); err != nil {
		return &OptionsDecodeError{Cause: err}
	}
	return nil
}

func normalizeKey(k string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(k)
}
