package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"specrun/internal/ctxlog"
	"specrun/internal/domain"
)

// specBlock represents a `spec` block inside a suite.
type specBlock struct {
	Path     string `hcl:"path,label"`
	Disabled bool   `hcl:"disabled,optional"`
	Reason   string `hcl:"reason,optional"`
	Group    string `hcl:"group,optional"`
}

// suiteBlock represents the `suite` block of a manifest file.
type suiteBlock struct {
	Name     string       `hcl:"name,label"`
	BasePath string       `hcl:"base_path"`
	Specs    []*specBlock `hcl:"spec,block"`
}

// fileSchema is the top-level structure of a manifest file; exactly one suite is allowed.
type fileSchema struct {
	Suite suiteBlock `hcl:"suite,block"`
}

// DecodeFile parses and decodes an HCL manifest file.
func DecodeFile(ctx context.Context, filePath string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding manifest file.", "path", filePath)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %s", filePath, diags.Error())
	}

	m, err := decodeBody(file.Body, filePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Successfully decoded manifest file.", "path", filePath, "suite", m.Name(), "specs_found", len(m.specs))
	return m, nil
}

// Decode parses and decodes manifest source; filename is used in diagnostics only.
func Decode(src []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %s", filename, diags.Error())
	}
	return decodeBody(file.Body, filename)
}

func decodeBody(body hcl.Body, filename string) (*Manifest, error) {
	var schema fileSchema
	if diags := gohcl.DecodeBody(body, nil, &schema); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %s", filename, diags.Error())
	}

	specs := make([]domain.Spec, 0, len(schema.Suite.Specs))
	for _, b := range schema.Suite.Specs {
		specs = append(specs, domain.Spec{
			Path:     b.Path,
			Disabled: b.Disabled,
			Reason:   b.Reason,
			Group:    b.Group,
		})
	}
	return New(schema.Suite.Name, schema.Suite.BasePath, specs), nil
}
