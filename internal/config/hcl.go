package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// LoadFile reads and validates the config file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadFromBytes(path, data)
}

// LoadFromBytes decodes and validates HCL source. filename is only used in
// diagnostics and must end in .hcl.
func LoadFromBytes(filename string, data []byte) (*File, error) {
	var f File
	if err := hclsimple.Decode(filename, data, nil, &f); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Encode renders f as HCL.
func (f *File) Encode() []byte {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	body.SetAttributeValue("endpoint_a", cty.StringVal(f.EndpointA))
	body.SetAttributeValue("endpoint_b", cty.StringVal(f.EndpointB))

	if f.RequestTimeout != "" || f.TeardownTimeout != "" || f.Rollback != nil {
		body.AppendNewline()
	}
	if f.RequestTimeout != "" {
		body.SetAttributeValue("request_timeout", cty.StringVal(f.RequestTimeout))
	}
	if f.TeardownTimeout != "" {
		body.SetAttributeValue("teardown_timeout", cty.StringVal(f.TeardownTimeout))
	}
	if f.Rollback != nil {
		body.SetAttributeValue("rollback", cty.BoolVal(*f.Rollback))
	}
	if f.LogLevel != "" {
		body.SetAttributeValue("log_level", cty.StringVal(f.LogLevel))
	}

	return hclwrite.Format(file.Bytes())
}

// WriteFile writes f to path, creating parent directories. An existing file
// is kept as path.bak.
func (f *File) WriteFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+".bak"); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, f.Encode(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
