package nodenet

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclDatasetFile is the top-level structure of a dataset file for decoding.
type hclDatasetFile struct {
	Examples []*hclExample `hcl:"example,block"`
}

// hclExample keeps the attributes as raw expressions so that they can be
// converted with explicit cty types. gohcl does not require expression
// fields, so a missing attribute arrives as a null value.
type hclExample struct {
	Name    string         `hcl:"name,label"`
	Inputs  hcl.Expression `hcl:"inputs"`
	Desired hcl.Expression `hcl:"desired"`
}

// LoadDataset parses an HCL file made of labeled example blocks:
//
//	example "zero_one" {
//	  inputs  = [0, 1]
//	  desired = 1
//	}
//
// Examples keep the order in which they appear in the file.
func LoadDataset(filePath string) (Dataset, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL dataset %s: %w", filePath, diags)
	}
	return decodeDataset(file.Body, filePath)
}

// ParseDataset is LoadDataset for in-memory HCL source. filename is only
// used in diagnostics.
func ParseDataset(src []byte, filename string) (Dataset, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL dataset %s: %w", filename, diags)
	}
	return decodeDataset(file.Body, filename)
}

func decodeDataset(body hcl.Body, filename string) (Dataset, error) {
	var parsed hclDatasetFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL dataset %s: %w", filename, diags)
	}

	dataset := make(Dataset, 0, len(parsed.Examples))
	for _, block := range parsed.Examples {
		ex, err := block.toExample()
		if err != nil {
			return nil, fmt.Errorf("example %q in %s: %w", block.Name, filename, err)
		}
		dataset = append(dataset, ex)
	}
	return dataset, nil
}

func (b *hclExample) toExample() (Example, error) {
	inputsVal, diags := b.Inputs.Value(nil)
	if diags.HasErrors() {
		return Example{}, diags
	}
	inputsVal, err := convert.Convert(inputsVal, cty.List(cty.Number))
	if err != nil {
		return Example{}, fmt.Errorf("%w: inputs must be a list of numbers: %v", ErrConfig, err)
	}
	if !inputsVal.IsWhollyKnown() || inputsVal.IsNull() {
		return Example{}, fmt.Errorf("%w: inputs must be a known, non-null list", ErrConfig)
	}

	desiredVal, diags := b.Desired.Value(nil)
	if diags.HasErrors() {
		return Example{}, diags
	}
	desiredVal, err = convert.Convert(desiredVal, cty.Number)
	if err != nil {
		return Example{}, fmt.Errorf("%w: desired must be a number: %v", ErrConfig, err)
	}
	if desiredVal.IsNull() {
		return Example{}, fmt.Errorf("%w: desired cannot be null", ErrConfig)
	}

	var ex Example
	if err := gocty.FromCtyValue(inputsVal, &ex.Inputs); err != nil {
		return Example{}, fmt.Errorf("%w: decoding inputs: %v", ErrConfig, err)
	}
	if err := gocty.FromCtyValue(desiredVal, &ex.Desired); err != nil {
		return Example{}, fmt.Errorf("%w: decoding desired: %v", ErrConfig, err)
	}
	return ex, nil
}
