package model

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Advisory validation for imported backup documents. Import proceeds on any
// document that parses; the schema only produces warnings so the user can
// spot a file that was hand-edited or produced by something else entirely.

const backupSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "category": {"type": "string"},
          "status": {"type": "string"},
          "stage": {"type": "string"},
          "startDate": {"type": "string"},
          "notes": {"type": "string"},
          "assignee": {"type": "string"},
          "priority": {"enum": ["low", "medium", "high", ""]},
          "createdAt": {"type": "integer"}
        }
      }
    },
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "color": {"type": "string"}
        }
      }
    },
    "statuses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "color": {"type": "string"}
        }
      }
    },
    "stages": {"type": "array", "items": {"type": "string"}},
    "settings": {
      "type": "object",
      "properties": {
        "darkMode": {"type": "boolean"},
        "showCompleted": {"type": "boolean"}
      }
    }
  }
}`

var compiledBackupSchema = mustCompileBackupSchema()

func mustCompileBackupSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("backup.json", strings.NewReader(backupSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile("backup.json")
}

// ValidateBackup checks raw backup JSON against the expected shape and
// returns human-readable warnings, one per mismatch. A nil/empty return
// means the document looked fine. A document that does not even parse
// returns the parse error as the sole warning; the caller has already
// decided separately whether to reject it.
func ValidateBackup(data []byte) []string {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("not valid JSON: %v", err)}
	}
	err := compiledBackupSchema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	var warnings []string
	collectCauses(&warnings, ve)
	return warnings
}

func collectCauses(out *[]string, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := strings.TrimPrefix(err.InstanceLocation, "/")
		if loc == "" {
			*out = append(*out, err.Message)
			return
		}
		*out = append(*out, fmt.Sprintf("%s: %s", strings.ReplaceAll(loc, "/", "."), err.Message))
		return
	}
	for _, c := range err.Causes {
		collectCauses(out, c)
	}
}
