package version

import (
	"fmt"
)

// SchemaVersionError indicates a config file whose schema this build can't read.
type SchemaVersionError struct {
	FilePath    string
	Found       string // "missing" or the schema string that was found
	Expected    string
	MinRequired string // Minimum colplot version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"config schema %s requires colplot >= %s (file: %s, supports up to: %s)",
			e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf(
			"config has no colplot_schema (file: %s). Add colplot_schema = %q.",
			e.FilePath, e.Expected,
		)
	}
	return fmt.Sprintf(
		"config has invalid schema version: found %s, expected %s (file: %s)",
		e.Found, e.Expected, e.FilePath,
	)
}

// MissingConfigSchema creates an error for a config file without colplot_schema.
func MissingConfigSchema(path string) error {
	return &SchemaVersionError{
		FilePath: path,
		Found:    "missing",
		Expected: CurrentConfigSchema(),
	}
}

// InvalidConfigSchema creates an error for a config file with an unsupported schema.
func InvalidConfigSchema(path, found string) error {
	e := &SchemaVersionError{
		FilePath: path,
		Found:    found,
		Expected: CurrentConfigSchema(),
	}
	if v, err := ParseConfigVersion(found); err == nil && v > CurrentConfigVersion {
		if minVersion, ok := MinColplotVersion[found]; ok {
			e.MinRequired = minVersion
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
