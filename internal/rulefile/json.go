package rulefile

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"

	"reimport/internal/core/engine"
)

// JSON keys of an encoded pattern
const (
	PatternKey = "$regexp"
	FlagsKey   = "flags"
)

// ParseJSON decodes a JSON rules document. selector is a gjson path.
func ParseJSON(data []byte, selector string) (interface{}, error) {
	if selector != "" {
		result := gjson.GetBytes(data, selector)
		if !result.Exists() {
			return nil, fmt.Errorf("selector %q matched nothing", selector)
		}
		data = []byte(result.Raw)
	}

	var raw interface{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return decodeJSON(raw)
}

func decodeJSON(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case []interface{}:
		for i, item := range x {
			d, err := decodeJSON(item)
			if err != nil {
				return nil, err
			}
			x[i] = d
		}
		return x, nil

	case map[string]interface{}:
		if src, ok := x[PatternKey]; ok {
			return decodePattern(src, x[FlagsKey])
		}
		for k, item := range x {
			d, err := decodeJSON(item)
			if err != nil {
				return nil, err
			}
			x[k] = d
		}
		return x, nil
	}
	return v, nil
}

func decodePattern(src, flags interface{}) (*engine.Pattern, error) {
	source, ok := src.(string)
	if !ok {
		return nil, fmt.Errorf("%q must be a string, got %T", PatternKey, src)
	}
	f := ""
	if flags != nil {
		if f, ok = flags.(string); !ok {
			return nil, fmt.Errorf("%q must be a string, got %T", FlagsKey, flags)
		}
	}
	return engine.Compile(source, f)
}
