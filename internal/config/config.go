// Package config carries the installer's source and destination settings:
// an embedded default, optionally overridden by a user-supplied file. Both
// are validated against the embedded JSON Schema before use.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed configs/dymo-code.json
var embeddedDefaultJSON []byte

//go:embed schemas/installer-config.schema.json
var schemaJSON []byte

const schemaID = "installer-config.schema.json"

type Repo struct {
	ID string `json:"id"` // owner/name
}

type Product struct {
	Name string `json:"name"`
}

type Mirror struct {
	Scheme string `json:"scheme,omitempty"` // raw or cdn
	Base   string `json:"base,omitempty"`   // overrides the scheme host
	Ref    string `json:"ref,omitempty"`    // branch reference
	Path   string `json:"path,omitempty"`   // path within the repo
}

type Source struct {
	APIBase      string `json:"apiBase,omitempty"`
	DownloadBase string `json:"downloadBase,omitempty"`
	Mirror       Mirror `json:"mirror,omitempty"`
}

type Download struct {
	Attempts int `json:"attempts,omitempty"`
	// BackoffSeconds is a pointer so an explicit 0 survives the merge.
	BackoffSeconds *int  `json:"backoffSeconds,omitempty"`
	MinSizeBytes   int64 `json:"minSizeBytes,omitempty"`
}

// Config is the full installer configuration.
// Schema: schemas/installer-config.schema.json
type Config struct {
	Schema     string   `json:"schema"`
	Version    int      `json:"version"`
	Repo       Repo     `json:"repo"`
	Product    Product  `json:"product"`
	InstallDir string   `json:"installDir,omitempty"`
	Source     Source   `json:"source"`
	Download   Download `json:"download"`
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("config: parse embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaID, doc); err != nil {
			schemaErr = fmt.Errorf("config: register schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaID)
	})
	return compiledSchema, schemaErr
}

func validate(data []byte) error {
	sch, err := compiled()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("config: schema validation: %w", err)
	}
	return nil
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	if err := validate(embeddedDefaultJSON); err != nil {
		return nil, fmt.Errorf("embedded default config is invalid: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(embeddedDefaultJSON, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse embedded default: %w", err)
	}
	return &cfg, nil
}

// Load returns the effective configuration: the embedded default with the
// file at path merged over it. An empty path returns the default as is.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the --config flag
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var override Config
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	merged := merge(*cfg, override)
	return &merged, nil
}

// merge applies every non-zero field of override onto base.
func merge(base, override Config) Config {
	cfg := base
	if override.Repo.ID != "" {
		cfg.Repo.ID = override.Repo.ID
	}
	if override.Product.Name != "" {
		cfg.Product.Name = override.Product.Name
	}
	if override.InstallDir != "" {
		cfg.InstallDir = override.InstallDir
	}
	if override.Source.APIBase != "" {
		cfg.Source.APIBase = override.Source.APIBase
	}
	if override.Source.DownloadBase != "" {
		cfg.Source.DownloadBase = override.Source.DownloadBase
	}
	if override.Source.Mirror.Scheme != "" {
		cfg.Source.Mirror.Scheme = override.Source.Mirror.Scheme
	}
	if override.Source.Mirror.Base != "" {
		cfg.Source.Mirror.Base = override.Source.Mirror.Base
	}
	if override.Source.Mirror.Ref != "" {
		cfg.Source.Mirror.Ref = override.Source.Mirror.Ref
	}
	if override.Source.Mirror.Path != "" {
		cfg.Source.Mirror.Path = override.Source.Mirror.Path
	}
	if override.Download.Attempts > 0 {
		cfg.Download.Attempts = override.Download.Attempts
	}
	if override.Download.BackoffSeconds != nil {
		cfg.Download.BackoffSeconds = override.Download.BackoffSeconds
	}
	if override.Download.MinSizeBytes > 0 {
		cfg.Download.MinSizeBytes = override.Download.MinSizeBytes
	}
	return cfg
}
