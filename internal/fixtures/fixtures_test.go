package fixtures

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `
fixtures:
  add_euint8_euint8:
    - inputs: [3, 4]
      output: 7
    - inputs: [200, 100]
      output: 44
  add_euint8_uint8:
    - inputs: [15, 3]
      output: 18
`
	table, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, table, 2)

	vecs := table["add_euint8_euint8"]
	require.Len(t, vecs, 2)
	assert.Equal(t, int64(3), vecs[0].Inputs[0].Int64())
	assert.Equal(t, int64(4), vecs[0].Inputs[1].Int64())
	assert.Equal(t, int64(7), vecs[0].Output.Int64())
	assert.Equal(t, int64(44), vecs[1].Output.Int64())

	require.Len(t, table["add_euint8_uint8"], 1)
}

func TestParse_BigValuesAsStrings(t *testing.T) {
	// 2^200 does not fit a machine word; string scalars carry it.
	big200 := new(big.Int).Lsh(big.NewInt(1), 200)
	src := `
fixtures:
  add_euint256_euint256:
    - inputs: ["` + big200.String() + `", 1]
      output: "` + new(big.Int).Add(big200, big.NewInt(1)).String() + `"
`
	table, err := Parse([]byte(src))
	require.NoError(t, err)

	vecs := table["add_euint256_euint256"]
	require.Len(t, vecs, 1)
	assert.Zero(t, vecs[0].Inputs[0].Cmp(big200))
	assert.Equal(t, int64(1), new(big.Int).Sub(vecs[0].Output, big200).Int64())
}

func TestParse_HexValues(t *testing.T) {
	src := `
fixtures:
  and_euint16_euint16:
    - inputs: ["0xff00", "0x0ff0"]
      output: "0x0f00"
`
	table, err := Parse([]byte(src))
	require.NoError(t, err)

	vecs := table["and_euint16_euint16"]
	require.Len(t, vecs, 1)
	assert.Equal(t, int64(0xff00), vecs[0].Inputs[0].Int64())
	assert.Equal(t, int64(0x0f00), vecs[0].Output.Int64())
}

func TestParse_Booleans(t *testing.T) {
	src := `
fixtures:
  and_ebool_ebool:
    - inputs: [true, false]
      output: false
`
	table, err := Parse([]byte(src))
	require.NoError(t, err)

	vecs := table["and_ebool_ebool"]
	require.Len(t, vecs, 1)
	assert.Equal(t, int64(1), vecs[0].Inputs[0].Int64())
	assert.Equal(t, int64(0), vecs[0].Inputs[1].Int64())
	assert.Equal(t, int64(0), vecs[0].Output.Int64())
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte("fixtures: {}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fixtures")
}

func TestParse_EmptyVectorList(t *testing.T) {
	src := `
fixtures:
  add_euint8_euint8: []
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty vector list")
}

func TestParse_InvalidInteger(t *testing.T) {
	src := `
fixtures:
  add_euint8_euint8:
    - inputs: ["seven", 4]
      output: 11
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid integer")
	assert.Contains(t, err.Error(), "add_euint8_euint8[0] input 0")
}

func TestParse_NonScalarValue(t *testing.T) {
	src := `
fixtures:
  add_euint8_euint8:
    - inputs: [[1, 2], 4]
      output: 7
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected scalar")
}

func TestParse_NotYAML(t *testing.T) {
	_, err := Parse([]byte("fixtures: [unclosed"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fixtures:\n  neg_euint8:\n    - inputs: [5]\n      output: 251\n"), 0o644))

	table, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, table["neg_euint8"], 1)
	assert.Equal(t, int64(251), table["neg_euint8"][0].Output.Int64())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read fixtures")
}
