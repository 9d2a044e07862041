package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/flextable/internal/record"
)

// LoadRecordsFile reads records from a YAML file. The file may hold a
// single mapping, a sequence of mappings, or a stream of documents;
// every mapping becomes one record.
func LoadRecordsFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	var recs []record.Record
	dec := yaml.NewDecoder(f)
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		switch v := doc.(type) {
		case nil:
			// Empty document, skip.
		case map[string]any:
			rec, err := record.FromNativeMap(v)
			if err != nil {
				return nil, fmt.Errorf("record %d in %s: %w", len(recs)+1, path, err)
			}
			recs = append(recs, rec)
		case []any:
			for _, item := range v {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("record %d in %s: expected a mapping, got %T", len(recs)+1, path, item)
				}
				rec, err := record.FromNativeMap(m)
				if err != nil {
					return nil, fmt.Errorf("record %d in %s: %w", len(recs)+1, path, err)
				}
				recs = append(recs, rec)
			}
		default:
			return nil, fmt.Errorf("%s: expected a mapping or a sequence of mappings, got %T", path, doc)
		}
	}

	return recs, nil
}

// LoadSchema compiles a CUE schema file. Records are validated by
// unifying them against the returned value.
func LoadSchema(path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("read schema: %w", err)
	}

	ctx := cuecontext.New()
	val := ctx.CompileBytes(data, cue.Filename(path))
	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile schema %s: %w", path, err)
	}
	return val, nil
}

// ValidateRecord unifies one record against the schema and reports any
// conflict. Blob fields are not expressible in CUE and are rejected up
// front.
func ValidateRecord(schema cue.Value, rec record.Record) error {
	native := map[string]any{}
	for name, val := range rec {
		if _, ok := val.(record.Blob); ok {
			return fmt.Errorf("field %q: blob fields cannot be schema-validated", name)
		}
		native[name] = record.ToNative(val)
	}

	encoded := schema.Context().Encode(native)
	if err := encoded.Err(); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	// Concrete validation makes a missing required field an error, not
	// just an unresolved constraint.
	unified := schema.Unify(encoded)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
