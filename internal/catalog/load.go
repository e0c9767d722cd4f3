package catalog

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/fhelab/overloadgen/internal/ir"
)

// catalogSchema constrains user-supplied catalog files. Unknown fields,
// missing names and invalid arity strings are rejected before decoding.
const catalogSchema = `
#Operator: {
	name:          string & !=""
	arity:         "unary" | "binary"
	encrypted:     *false | bool
	scalar:        *false | bool
	noScalarLeft:  *false | bool
	shift:         *false | bool
	rotate:        *false | bool
	booleanResult: *false | bool
	binarySymbol:  *"" | string
	unarySymbol:   *"" | string
}

#Type: {
	name:      string & =~"^(Uint|Int)[0-9]+$"
	bits:      int & >0
	operators: [...string]
}

#Catalog: {
	operators: [...#Operator]
	types:     [...#Type]
}
`

// rawOperator mirrors the CUE operator shape for decoding.
type rawOperator struct {
	Name          string `json:"name"`
	Arity         string `json:"arity"`
	Encrypted     bool   `json:"encrypted"`
	Scalar        bool   `json:"scalar"`
	NoScalarLeft  bool   `json:"noScalarLeft"`
	Shift         bool   `json:"shift"`
	Rotate        bool   `json:"rotate"`
	BooleanResult bool   `json:"booleanResult"`
	BinarySymbol  string `json:"binarySymbol"`
	UnarySymbol   string `json:"unarySymbol"`
}

// rawType mirrors the CUE type shape for decoding.
type rawType struct {
	Name      string   `json:"name"`
	Bits      int      `json:"bits"`
	Operators []string `json:"operators"`
}

type rawCatalog struct {
	Operators []rawOperator `json:"operators"`
	Types     []rawType     `json:"types"`
}

// LoadFile loads and validates a catalog from a CUE file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse validates catalog CUE bytes against the embedded schema and
// decodes them.
func Parse(data []byte, filename string) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(catalogSchema).LookupPath(cue.ParsePath("#Catalog"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("catalog schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	var raw rawCatalog
	if err := unified.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return convert(raw)
}

// convert maps the raw decoded catalog to ir descriptors, enforcing the
// descriptor invariants the schema cannot express.
func convert(raw rawCatalog) (*Catalog, error) {
	cat := &Catalog{}
	seen := make(map[string]bool)
	for _, op := range raw.Operators {
		if seen[op.Name] {
			return nil, fmt.Errorf("catalog: duplicate operator %q", op.Name)
		}
		seen[op.Name] = true
		if op.Shift && op.Rotate {
			return nil, fmt.Errorf("catalog: operator %q: at most one of shift and rotate may be set", op.Name)
		}
		arity := ir.Binary
		if op.Arity == "unary" {
			arity = ir.Unary
		}
		cat.Operators = append(cat.Operators, ir.OperatorDescriptor{
			Name:          op.Name,
			Arity:         arity,
			Encrypted:     op.Encrypted,
			Scalar:        op.Scalar,
			NoScalarLeft:  op.NoScalarLeft,
			Shift:         op.Shift,
			Rotate:        op.Rotate,
			BooleanResult: op.BooleanResult,
			BinarySymbol:  op.BinarySymbol,
			UnarySymbol:   op.UnarySymbol,
		})
	}
	for _, t := range raw.Types {
		for _, name := range t.Operators {
			if !seen[name] {
				return nil, fmt.Errorf("catalog: type %q lists unknown operator %q", t.Name, name)
			}
		}
		cat.Types = append(cat.Types, ir.TypeDescriptor{
			DisplayName: t.Name,
			BitLength:   t.Bits,
			Operators:   t.Operators,
		})
	}
	return cat, nil
}
