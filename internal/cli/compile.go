package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	gsp "github.com/Hakukano/FLP-Go-GSP"
	"github.com/Hakukano/FLP-Go-GSP/sqlite"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Tables string // path to the YAML tables file
}

// CompileResult holds the compiled fragment and its rendered bind values.
type CompileResult struct {
	Fragment string   `json:"fragment"`
	Binds    []string `json:"binds"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <query>",
		Short: "Compile a query into a parameterized SQLite fragment",
		Long: `Compile a query into a SQLite WHERE fragment with positional ?
placeholders and typed bind values. Field types and optional column renames
come from the --tables YAML file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Tables, "tables", "t", "", "YAML file declaring field types and renames")
	_ = cmd.MarkFlagRequired("tables")

	return cmd
}

func runCompile(opts *CompileOptions, query string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	renames, types, err := LoadTables(opts.Tables)
	if err != nil {
		_ = formatter.Error(ErrCodeBadTables, err.Error())
		return WrapExitError(ExitCommandError, "load tables", err)
	}

	expr, err := gsp.Parse(query)
	if err != nil {
		_ = formatter.Error(ErrCodeSyntax, err.Error())
		return WrapExitError(ExitCommandError, "parse failed", err)
	}

	fragment, binds, err := sqlite.Interpret(expr, renames, types)
	if err != nil {
		_ = formatter.Error(compileErrorCode(err), err.Error())
		return WrapExitError(ExitCommandError, "compile failed", err)
	}

	result := CompileResult{Fragment: fragment, Binds: renderBinds(binds)}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, result.Fragment)
	for i, bind := range result.Binds {
		fmt.Fprintf(formatter.Writer, "  ?%d = %s\n", i+1, bind)
	}
	return nil
}

// compileErrorCode maps a compilation error to a CLI error code.
func compileErrorCode(err error) string {
	var unknownErr *sqlite.UnknownFieldError
	if errors.As(err, &unknownErr) {
		return ErrCodeUnknownField
	}
	var parseErr *sqlite.ParseError
	if errors.As(err, &parseErr) {
		return ErrCodeParseLiteral
	}
	return ErrCodeGeneric
}

// renderBinds formats bind values as shape(payload) strings for display.
func renderBinds(binds []sqlite.Value) []string {
	out := make([]string, len(binds))
	for i, b := range binds {
		switch v := b.(type) {
		case sqlite.BigInt:
			out[i] = fmt.Sprintf("bigint(%d)", int64(v))
		case sqlite.Blob:
			out[i] = fmt.Sprintf("blob(%q)", string(v))
		case sqlite.Boolean:
			out[i] = fmt.Sprintf("boolean(%t)", bool(v))
		case sqlite.DateTime:
			out[i] = fmt.Sprintf("datetime(%s)", time.Time(v).Format(time.RFC3339))
		case sqlite.Integer:
			out[i] = fmt.Sprintf("integer(%d)", int32(v))
		case sqlite.Real:
			out[i] = fmt.Sprintf("real(%g)", float64(v))
		case sqlite.Text:
			out[i] = fmt.Sprintf("text(%q)", string(v))
		}
	}
	return out
}
