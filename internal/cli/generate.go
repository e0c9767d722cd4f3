package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fhelab/overloadgen/internal/catalog"
	"github.com/fhelab/overloadgen/internal/fixtures"
	"github.com/fhelab/overloadgen/internal/gen"
	"github.com/fhelab/overloadgen/internal/ir"
	"github.com/fhelab/overloadgen/internal/registry"
	"github.com/fhelab/overloadgen/internal/shard"
	"github.com/fhelab/overloadgen/internal/solgen"
	"github.com/fhelab/overloadgen/internal/testgen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions

	CatalogPath  string
	FixturesPath string
	OutDir       string

	ShardCapacity   int
	TestGroups      int
	ShiftAmountBits int

	Shuffle              bool
	DeterministicShuffle bool
	PublicDecrypt        bool

	ParentContract  string
	ContractImports []string
	SignersImport   string
	InstanceImport  string
	TypesImport     string
}

// RunManifest summarizes one generation run. It is written alongside the
// emitted sources so CI can verify the run completed and nothing partial
// was persisted.
type RunManifest struct {
	RunID         string         `json:"run_id"`
	OverloadCount int            `json:"overload_count"`
	TestCaseCount int            `json:"test_case_count"`
	Shards        []ManifestShard `json:"shards"`
	Contracts     []string       `json:"contracts"`
	Tests         []string       `json:"tests"`
	PublicDecrypt bool           `json:"public_decrypt"`
	Shuffled      bool           `json:"shuffled"`
}

// ManifestShard records one shard's size for the manifest.
type ManifestShard struct {
	Number    int `json:"number"`
	Overloads int `json:"overloads"`
}

// defaultContractImports are emitted into every contract unless overridden.
var defaultContractImports = []string{
	`import "@fhevm/solidity/lib/FHE.sol";`,
	`import { FHEVMConfig } from "@fhevm/solidity/lib/FHEVMConfig.sol";`,
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate overload test contracts and test harness files",
		Long: `Generate enumerates every legal operator overload, partitions the
signature list into size-bounded shards, and writes one Solidity test
contract per shard plus the requested number of TypeScript test files.

Generation either completes or fails fast: any inconsistency (a signed
operand pair, an overload without fixtures, a fixture value outside its
operand range) aborts the run and nothing is written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "catalog CUE file (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.FixturesPath, "fixtures", "", "fixture table YAML file (required)")
	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "o", "", "output directory (required)")
	cmd.Flags().IntVar(&opts.ShardCapacity, "shard-capacity", shard.DefaultCapacity, "max overloads per contract")
	cmd.Flags().IntVar(&opts.TestGroups, "test-groups", 1, "number of test files to emit")
	cmd.Flags().IntVar(&opts.ShiftAmountBits, "shift-amount-bits", gen.DefaultShiftAmountBits, "bit width of shift/rotate amount operands")
	cmd.Flags().BoolVar(&opts.Shuffle, "shuffle", false, "reorder overloads before sharding")
	cmd.Flags().BoolVar(&opts.DeterministicShuffle, "deterministic-shuffle", false, "use the fixed-seed shuffle source")
	cmd.Flags().BoolVar(&opts.PublicDecrypt, "public-decrypt", false, "emit the public-decrypt test flow")
	cmd.Flags().StringVar(&opts.ParentContract, "parent-contract", "", "parent contract to inherit setup from")
	cmd.Flags().StringArrayVar(&opts.ContractImports, "contract-import", nil, "import statement for emitted contracts (repeatable)")
	cmd.Flags().StringVar(&opts.SignersImport, "signers-import", "../signers", "signer helper import path")
	cmd.Flags().StringVar(&opts.InstanceImport, "instance-import", "../instance", "encrypted-instance helper import path")
	cmd.Flags().StringVar(&opts.TypesImport, "types-import", "../types", "generated-types helper import path")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return WrapExitError(ExitCommandError, "initializing logger", err)
	}
	defer func() { _ = logger.Sync() }()

	// Required configuration is checked up front: its absence is fatal and
	// nothing may be generated or written without it.
	if opts.OutDir == "" {
		_ = formatter.Error(ErrCodeMissingConfiguration, "--out-dir is required", nil)
		return NewExitError(ExitCommandError, "missing required configuration: --out-dir")
	}
	if opts.FixturesPath == "" {
		_ = formatter.Error(ErrCodeMissingConfiguration, "--fixtures is required", nil)
		return NewExitError(ExitCommandError, "missing required configuration: --fixtures")
	}
	if opts.TestGroups < 1 {
		_ = formatter.Error(ErrCodeMissingConfiguration, "--test-groups must be positive", nil)
		return NewExitError(ExitCommandError, "missing required configuration: --test-groups")
	}

	cat, err := loadCatalog(opts.CatalogPath)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading catalog", err)
	}
	logger.Debug("catalog loaded",
		zap.Int("operators", len(cat.Operators)),
		zap.Int("types", len(cat.Types)))

	table, err := fixtures.LoadFile(opts.FixturesPath)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading fixtures", err)
	}
	logger.Debug("fixtures loaded", zap.Int("methods", len(table)))

	// All emission happens in memory; files are only written once every
	// shard and group has rendered successfully.
	result, err := generateAll(cat, table, opts)
	if err != nil {
		_ = formatter.Error(ErrCodeGenerateFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "generation failed", err)
	}
	logger.Debug("generation complete",
		zap.Int("overloads", result.Manifest.OverloadCount),
		zap.Int("shards", len(result.Manifest.Shards)),
		zap.Int("groups", len(result.TestSources)))

	if err := writeOutputs(opts.OutDir, result); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "writing outputs", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result.Manifest)
	}
	return formatter.Success(fmt.Sprintf("generated %d overloads into %d contract(s) and %d test file(s) under %s (run %s)",
		result.Manifest.OverloadCount, len(result.Manifest.Contracts), len(result.Manifest.Tests), opts.OutDir, result.Manifest.RunID))
}

// generateResult carries everything a run produced, in memory.
type generateResult struct {
	Manifest        RunManifest
	ContractSources []string
	TestSources     []string
}

// generateAll runs the full pipeline: enumerate, partition, emit contracts,
// emit tests, assemble the manifest.
func generateAll(cat *catalog.Catalog, table fixtures.Table, opts *GenerateOptions) (*generateResult, error) {
	sigs, err := gen.Generate(cat.Operators, cat.Types, gen.Options{ShiftAmountBits: opts.ShiftAmountBits})
	if err != nil {
		return nil, err
	}

	shards := shard.Partition(sigs, opts.ShardCapacity, shuffleMode(opts.Shuffle, opts.DeterministicShuffle))

	result := &generateResult{
		Manifest: RunManifest{
			RunID:         uuid.Must(uuid.NewV7()).String(),
			OverloadCount: len(sigs),
			PublicDecrypt: opts.PublicDecrypt,
			Shuffled:      opts.Shuffle,
		},
	}

	imports := opts.ContractImports
	if len(imports) == 0 {
		imports = defaultContractImports
	}
	for _, s := range shards {
		src := solgen.Emit(s, solgen.Options{
			Imports:        imports,
			ParentContract: opts.ParentContract,
			PublicDecrypt:  opts.PublicDecrypt,
			Operators:      cat.Operators,
		})
		result.ContractSources = append(result.ContractSources, src)
		result.Manifest.Shards = append(result.Manifest.Shards, ManifestShard{Number: s.Number, Overloads: len(s.Overloads)})
		result.Manifest.Contracts = append(result.Manifest.Contracts, solgen.ContractName(s.Number)+".sol")
	}

	testSources, err := testgen.Emit(shards, opts.TestGroups, table, testgen.ImportConfig{
		Signers:  opts.SignersImport,
		Instance: opts.InstanceImport,
		Types:    opts.TypesImport,
	}, testgen.Options{
		PublicDecrypt: opts.PublicDecrypt,
		Shuffle:       shuffleMode(opts.Shuffle, opts.DeterministicShuffle),
	})
	if err != nil {
		return nil, err
	}
	result.TestSources = testSources
	for i := range testSources {
		result.Manifest.Tests = append(result.Manifest.Tests, fmt.Sprintf("fheOperations%d.ts", i+1))
	}

	result.Manifest.TestCaseCount = countTestCases(shards, table)
	return result, nil
}

// countTestCases sums the registered fixtures across all overloads across
// all shards.
func countTestCases(shards []ir.OverloadShard, table fixtures.Table) int {
	count := 0
	for _, s := range shards {
		for _, o := range s.Overloads {
			count += len(table[registry.MethodName(o)])
		}
	}
	return count
}

// writeOutputs persists a fully generated result to the output directory.
func writeOutputs(outDir string, result *generateResult) error {
	contractsDir := filepath.Join(outDir, "contracts")
	testsDir := filepath.Join(outDir, "tests")
	for _, dir := range []string{contractsDir, testsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	for i, src := range result.ContractSources {
		path := filepath.Join(contractsDir, result.Manifest.Contracts[i])
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	for i, src := range result.TestSources {
		path := filepath.Join(testsDir, result.Manifest.Tests[i])
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return writeManifest(filepath.Join(outDir, "manifest.json"), result.Manifest)
}

// loadCatalog loads the catalog file, or the built-in catalog when no path
// is given.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat := catalog.Default()
		return &cat, nil
	}
	return catalog.LoadFile(path)
}

// shuffleMode maps the two shuffle flags to a shard.ShuffleMode.
func shuffleMode(shuffle, deterministic bool) shard.ShuffleMode {
	switch {
	case !shuffle:
		return shard.ShuffleNone
	case deterministic:
		return shard.ShuffleDeterministic
	default:
		return shard.ShuffleRandom
	}
}

// newLogger builds the diagnostic logger: a no-op unless verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
