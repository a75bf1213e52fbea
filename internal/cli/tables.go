package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Hakukano/FLP-Go-GSP/sqlite"
)

// TablesFile is the YAML schema for the compile command's --tables file.
type TablesFile struct {
	Types   map[string]string `yaml:"types"`
	Renames map[string]string `yaml:"renames"`
}

var typeByName = map[string]sqlite.Type{
	"bigint":   sqlite.TypeBigInt,
	"blob":     sqlite.TypeBlob,
	"boolean":  sqlite.TypeBoolean,
	"datetime": sqlite.TypeDateTime,
	"integer":  sqlite.TypeInteger,
	"real":     sqlite.TypeReal,
	"text":     sqlite.TypeText,
}

// LoadTables reads a YAML file declaring field types and optional column
// renames.
//
// Example:
//
//	types:
//	  name: text
//	  age: bigint
//	renames:
//	  name: user_name
func LoadTables(path string) (sqlite.Renames, sqlite.Types, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read tables file: %w", err)
	}

	var file TablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse tables file: %w", err)
	}
	if len(file.Types) == 0 {
		return nil, nil, fmt.Errorf("tables file %s declares no field types", path)
	}

	types := make(sqlite.Types, len(file.Types))
	for field, name := range file.Types {
		t, ok := typeByName[name]
		if !ok {
			return nil, nil, fmt.Errorf("field %q: unknown type %q", field, name)
		}
		types[field] = t
	}

	return sqlite.Renames(file.Renames), types, nil
}
