// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package source

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Kind selects which authoring file a schema describes.
type Kind string

// Authoring file kinds.
const (
	KindCatalog Kind = "catalog"
	KindRoster  Kind = "roster"
)

// Kinds lists every authoring file kind.
var Kinds = []Kind{KindCatalog, KindRoster}

var (
	schemaMu    sync.Mutex
	schemaCache = map[Kind]*jschema.Schema{}
)

func (k Kind) target() (any, string, string, error) {
	switch k {
	case KindCatalog:
		return &Catalog{}, "Pitchpolt Item Catalog", "Schema for items.yaml catalog source files", nil
	case KindRoster:
		return &Roster{}, "Pitchpolt Character Roster", "Schema for characters.yaml roster source files", nil
	default:
		return nil, "", "", oops.Code("SOURCE_UNKNOWN_KIND").With("kind", string(k)).Errorf("unknown source kind %q", k)
	}
}

// SchemaID returns the schema $id for files of kind k.
func SchemaID(k Kind) string {
	return "https://pitchpolt.dev/schemas/" + string(k) + ".schema.json"
}

// GenerateSchema generates the JSON Schema for files of kind k.
func GenerateSchema(k Kind) ([]byte, error) {
	target, title, desc, err := k.target()
	if err != nil {
		return nil, err
	}

	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(target)
	schema.ID = jsonschema.ID(SchemaID(k))
	schema.Title = title
	schema.Description = desc

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code("SOURCE_SCHEMA_FAILED").With("kind", string(k)).Wrap(err)
	}
	return data, nil
}

// ValidateSchema validates YAML data against the schema for kind k.
func ValidateSchema(k Kind, data []byte) error {
	if len(data) == 0 {
		return oops.Code("SOURCE_EMPTY").With("kind", string(k)).Errorf("%s data is empty", k)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return oops.Code("SOURCE_INVALID_YAML").With("kind", string(k)).Wrap(err)
	}

	sch, err := compiledSchema(k)
	if err != nil {
		return err
	}

	if err := sch.Validate(convertToJSONTypes(doc)); err != nil {
		return oops.Code("SOURCE_SCHEMA_VIOLATION").With("kind", string(k)).Wrapf(err, "schema validation failed")
	}
	return nil
}

func compiledSchema(k Kind) (*jschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if sch, ok := schemaCache[k]; ok {
		return sch, nil
	}

	raw, err := GenerateSchema(k)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, oops.Code("SOURCE_SCHEMA_FAILED").With("kind", string(k)).Wrap(err)
	}

	c := jschema.NewCompiler()
	url := string(k) + ".schema.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, oops.Code("SOURCE_SCHEMA_FAILED").With("kind", string(k)).Wrap(err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, oops.Code("SOURCE_SCHEMA_FAILED").With("kind", string(k)).Wrap(err)
	}

	schemaCache[k] = sch
	return sch, nil
}

// convertToJSONTypes converts YAML-decoded values into the shapes the
// validator expects, recursing into maps and slices. Integers become
// json.Number so large ids keep their precision.
func convertToJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = convertToJSONTypes(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = convertToJSONTypes(v)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(val))
	case int64:
		return json.Number(strconv.FormatInt(val, 10))
	case uint64:
		return json.Number(strconv.FormatUint(val, 10))
	case string, float64, bool, nil:
		return val
	default:
		if b, err := json.Marshal(val); err == nil {
			var out any
			if err := json.Unmarshal(b, &out); err == nil {
				return out
			}
		}
		return val
	}
}
