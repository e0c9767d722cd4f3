package fixtures

import (
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fhelab/overloadgen/internal/ir"
)

// Table maps canonical method names to their registered test vectors.
type Table map[string][]ir.TestVector

// rawVector is the YAML shape of one test vector. Values are kept as
// nodes so integers of any magnitude survive decoding.
type rawVector struct {
	Inputs []yaml.Node `yaml:"inputs"`
	Output yaml.Node   `yaml:"output"`
}

type rawFile struct {
	Fixtures map[string][]rawVector `yaml:"fixtures"`
}

// LoadFile parses a fixture table from a YAML file.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses fixture YAML bytes.
func Parse(data []byte) (Table, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	if len(raw.Fixtures) == 0 {
		return nil, fmt.Errorf("fixture file declares no fixtures")
	}

	table := make(Table, len(raw.Fixtures))
	for method, vectors := range raw.Fixtures {
		if len(vectors) == 0 {
			return nil, fmt.Errorf("fixture %s: empty vector list", method)
		}
		for i, rv := range vectors {
			v := ir.TestVector{}
			for j := range rv.Inputs {
				in, err := parseValue(&rv.Inputs[j])
				if err != nil {
					return nil, fmt.Errorf("fixture %s[%d] input %d: %w", method, i, j, err)
				}
				v.Inputs = append(v.Inputs, in)
			}
			out, err := parseValue(&rv.Output)
			if err != nil {
				return nil, fmt.Errorf("fixture %s[%d] output: %w", method, i, err)
			}
			v.Output = out
			table[method] = append(table[method], v)
		}
	}
	return table, nil
}

// parseValue converts a YAML scalar node to a big integer. Base prefixes
// (0x, 0b) are honored for string scalars; booleans map to 0 and 1 for
// encrypted-boolean operands.
func parseValue(n *yaml.Node) (*big.Int, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("expected scalar, got %v", n.Kind)
	}
	switch n.Tag {
	case "!!bool":
		if n.Value == "true" {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case "!!int", "!!str":
		v, ok := new(big.Int).SetString(n.Value, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", n.Value)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported value tag %s", n.Tag)
	}
}
