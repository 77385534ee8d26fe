// Package gen generates a Go source file of table and column name
// constants from a live database schema, so statement builders can refer
// to identifiers without string literals.
package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives one generation run. It is usually loaded from a YAML
// file:
//
//	driver: postgres
//	dsn: postgres://localhost/app?sslmode=disable
//	package: dbconst
//	out: internal/dbconst/constants.go
type Config struct {
	// Driver is the database/sql driver name: postgres, mysql or sqlite.
	Driver string `yaml:"driver"`
	// DSN is the data source name passed to sql.Open.
	DSN string `yaml:"dsn"`
	// Package is the package name of the generated file.
	Package string `yaml:"package"`
	// Schema restricts introspection to one schema. Defaults to the
	// driver's conventional schema (public for postgres, the DSN database
	// for mysql); ignored by sqlite.
	Schema string `yaml:"schema,omitempty"`
	// Out is the path of the generated file.
	Out string `yaml:"out"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gen: read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("gen: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and applies defaults.
func (c *Config) Validate() error {
	switch c.Driver {
	case "postgres", "mysql", "sqlite":
	case "":
		return fmt.Errorf("gen: driver is required")
	default:
		return fmt.Errorf("gen: unsupported driver %q", c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("gen: dsn is required")
	}
	if c.Out == "" {
		return fmt.Errorf("gen: out is required")
	}
	if c.Package == "" {
		c.Package = "dbconst"
	}
	return nil
}
