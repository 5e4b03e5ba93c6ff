package config

import (
	"math"
	"strconv"

	"github.com/BurntSushi/toml"
)

// decodeTOML decodes a TOML document into v. The toml decoder hands float
// literals to UnmarshalText formatted with %f, which keeps six decimal
// places, so the document is first read generically and every float is
// re-encoded as its shortest exact string before the typed decode.
func decodeTOML(data []byte, v any) error {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}
	exact, err := toml.Marshal(exactFloats(raw))
	if err != nil {
		return err
	}
	return toml.Unmarshal(exact, v)
}

// exactFloats rewrites finite float64 values in place as strings.
func exactFloats(v any) any {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return t
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case map[string]any:
		for k, e := range t {
			t[k] = exactFloats(e)
		}
	case []map[string]any:
		for _, m := range t {
			exactFloats(m)
		}
	case []any:
		for i, e := range t {
			t[i] = exactFloats(e)
		}
	}
	return v
}
