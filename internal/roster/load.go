package roster

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/lap-analysis/constants"
	"github.com/joseph-ayodele/lap-analysis/internal/common"
)

//go:embed rosters/*.yaml
var builtinFS embed.FS

// file is the on-disk roster shape.
type file struct {
	Season string            `koanf:"season"`
	Name   string            `koanf:"name"`
	Riders map[string]string `koanf:"riders"`
}

// Schema returns the JSON-Schema roster files are validated against.
func Schema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"riders"},
		"properties": map[string]any{
			"season": map[string]any{"type": "string"},
			"name":   map[string]any{"type": "string"},
			"riders": map[string]any{
				"type":          "object",
				"minProperties": 1,
				"propertyNames": map[string]any{"pattern": `^\d{1,2}$`},
				"additionalProperties": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
		},
	}
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(Schema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("roster.json", bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("roster.json")
	})
	return compiledSchema, schemaErr
}

// Parse reads a YAML (or JSON) roster document and validates it.
func Parse(content []byte) (*Roster, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, common.NewAppError(common.CodeConfig, "parse roster", err)
	}

	// Round-trip through JSON so the validator only sees JSON value types.
	raw, err := json.Marshal(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("marshal roster: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal roster: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile roster schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, common.NewAppError(common.CodeConfig, "roster does not match schema", err)
	}

	var f file
	if err := k.Unmarshal("", &f); err != nil {
		return nil, common.NewAppError(common.CodeConfig, "decode roster", err)
	}
	return New(f.Season, f.Name, f.Riders), nil
}

// LoadFile reads and validates a roster file.
func LoadFile(path string) (*Roster, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfig, "read roster file", err)
	}
	r, err := Parse(content)
	if err != nil {
		return nil, common.WrapError(err, "roster "+path)
	}
	return r, nil
}

// Builtin returns the embedded roster for a season; aliases such as "24" or
// "motogp-2020" are accepted.
func Builtin(season string) (*Roster, error) {
	s, ok := constants.CanonicalizeSeason(season)
	if !ok {
		return nil, common.NewAppError(common.CodeConfig, fmt.Sprintf("no built-in roster for season %q", season), common.ErrInvalidInput)
	}
	content, err := builtinFS.ReadFile("rosters/" + string(s) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read built-in roster %s: %w", s, err)
	}
	return Parse(content)
}

// Resolve picks the roster file when path is set, the built-in season otherwise.
func Resolve(season, path string) (*Roster, error) {
	if path != "" {
		return LoadFile(path)
	}
	return Builtin(season)
}
