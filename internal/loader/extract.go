package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractValues evaluates the operation's extract paths against a response
// body. Paths are tidwall/gjson paths. Missing paths are skipped; callers
// wanting strictness can compare the result size against the spec.
func (op *Operation) ExtractValues(body []byte) map[string]string {
	extracted := map[string]string{}
	if len(op.Extract) == 0 || len(body) == 0 {
		return extracted
	}

	parsed := gjson.ParseBytes(body)
	for key, path := range op.Extract {
		p := strings.TrimSpace(path)
		if p == "" {
			continue
		}
		res := parsed.Get(p)
		if res.Exists() {
			extracted[key] = anyToString(res.Value())
		}
	}
	return extracted
}

func anyToString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		// Avoid scientific notation for integers
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		// Fallback to JSON
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		b = bytes.TrimSpace(b)
		if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
			return string(b[1 : len(b)-1])
		}
		return string(b)
	}
}
