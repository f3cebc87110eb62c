package ranking

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const standardSchemaJSON = `{
  "type": "object",
  "properties": {
    "rankings": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "rank": {"type": "number"},
          "priority": {"type": "string"}
        },
        "required": ["id", "rank", "priority"],
        "additionalProperties": false
      }
    }
  },
  "required": ["rankings"],
  "additionalProperties": false
}`

const debugSchemaJSON = `{
  "type": "object",
  "properties": {
    "rankings": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "rank": {"type": "number"},
          "priority": {"type": "string"},
          "reasoning": {"type": "string"}
        },
        "required": ["id", "rank", "priority"],
        "additionalProperties": false
      }
    }
  },
  "required": ["rankings"],
  "additionalProperties": false
}`

var (
	standardSchema = mustCompileSchema(standardSchemaJSON, "rankings.schema.json")
	debugSchema    = mustCompileSchema(debugSchemaJSON, "rankings-debug.schema.json")
)

func mustCompileSchema(raw, name string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse embedded %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("add %s resource: %v", name, err))
	}
	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile %s: %v", name, err))
	}
	return sch
}

// SchemaJSON returns the raw response schema document for the mode, suitable
// for schema-constrained generation APIs.
func (m Mode) SchemaJSON() string {
	if m == ModeDebug {
		return debugSchemaJSON
	}
	return standardSchemaJSON
}

func (m Mode) schema() *jsonschema.Schema {
	if m == ModeDebug {
		return debugSchema
	}
	return standardSchema
}

type rankingsDoc struct {
	Rankings []Entry `json:"rankings"`
}

// ParseEntries decodes and validates a model response document against the
// mode's schema, then clamps each rank into [0.0, 1.0] and discards priority
// values outside the stored levels. A single out-of-range rank never fails
// the batch; a structurally invalid document does.
func ParseEntries(data []byte, mode Mode) ([]Entry, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("model response is not valid JSON: %w", err)
	}
	if err := mode.schema().Validate(doc); err != nil {
		return nil, fmt.Errorf("model response does not match %s schema: %w", mode, err)
	}
	var parsed rankingsDoc
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	for i := range parsed.Rankings {
		parsed.Rankings[i].Rank = clampRank(parsed.Rankings[i].Rank)
		parsed.Rankings[i].Priority = normalizePriority(parsed.Rankings[i].Priority)
	}
	return parsed.Rankings, nil
}

func clampRank(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

func normalizePriority(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "high", "medium", "low":
		return p
	default:
		return ""
	}
}
