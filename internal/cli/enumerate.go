package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fhelab/overloadgen/internal/gen"
	"github.com/fhelab/overloadgen/internal/ir"
	"github.com/fhelab/overloadgen/internal/registry"
)

// EnumerateOptions holds flags for the enumerate command.
type EnumerateOptions struct {
	*RootOptions

	CatalogPath     string
	ShiftAmountBits int
}

// SignatureListing is the JSON payload of the enumerate command.
type SignatureListing struct {
	Count      int               `json:"count"`
	Signatures []SignatureRecord `json:"signatures"`
}

// SignatureRecord is one signature in display form.
type SignatureRecord struct {
	Method    string   `json:"method"`
	Name      string   `json:"name"`
	Arguments []string `json:"arguments"`
	Return    string   `json:"return"`
}

// NewEnumerateCommand creates the enumerate command: it prints the
// signature list without emitting any source, for inspection.
func NewEnumerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EnumerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "enumerate",
		Short:         "List every overload signature the catalog produces",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnumerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "catalog CUE file (default: built-in catalog)")
	cmd.Flags().IntVar(&opts.ShiftAmountBits, "shift-amount-bits", gen.DefaultShiftAmountBits, "bit width of shift/rotate amount operands")

	return cmd
}

func runEnumerate(opts *EnumerateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := loadCatalog(opts.CatalogPath)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading catalog", err)
	}

	sigs, err := gen.Generate(cat.Operators, cat.Types, gen.Options{ShiftAmountBits: opts.ShiftAmountBits})
	if err != nil {
		_ = formatter.Error(ErrCodeGenerateFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "generation failed", err)
	}

	if opts.Format == "json" {
		listing := SignatureListing{Count: len(sigs)}
		for _, s := range sigs {
			listing.Signatures = append(listing.Signatures, toRecord(s))
		}
		return formatter.Success(listing)
	}

	var b strings.Builder
	for _, s := range sigs {
		rec := toRecord(s)
		fmt.Fprintf(&b, "%s(%s) -> %s\n", rec.Name, strings.Join(rec.Arguments, ", "), rec.Return)
	}
	fmt.Fprintf(&b, "%d signature(s)", len(sigs))
	return formatter.Success(b.String())
}

func toRecord(s ir.OverloadSignature) SignatureRecord {
	args := make([]string, len(s.Arguments))
	for i, a := range s.Arguments {
		args[i] = registry.ArgumentName(a)
	}
	return SignatureRecord{
		Method:    registry.MethodName(s),
		Name:      s.Name,
		Arguments: args,
		Return:    registry.ArgumentName(s.Return),
	}
}
