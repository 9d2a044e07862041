package cli

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/flextable/internal/record"
)

// parseFields converts command-line field=value arguments into a record.
// Values are parsed with YAML scalar rules, so `n=42` is an integer,
// `ratio=0.5` a real, `ok=true` a boolean and `note=null` a null. Anything
// else is text; quote values that would otherwise be coerced (`id="007"`).
func parseFields(args []string) (record.Record, error) {
	rec := record.Record{}
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid field %q: expected name=value", arg)
		}
		if name == "" {
			return nil, fmt.Errorf("invalid field %q: empty field name", arg)
		}

		var native any
		if err := yaml.Unmarshal([]byte(raw), &native); err != nil {
			// Not a valid YAML scalar (stray quotes and the like); keep
			// the raw text as-is.
			native = raw
		}
		switch native.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("invalid field %q: value must be a scalar", arg)
		}

		val, err := record.FromNative(native)
		if err != nil {
			return nil, fmt.Errorf("invalid field %q: %w", arg, err)
		}
		rec[name] = val
	}
	return rec, nil
}
