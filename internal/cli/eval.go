package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	gsp "github.com/Hakukano/FLP-Go-GSP"
	"github.com/Hakukano/FLP-Go-GSP/evaluate"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	return &cobra.Command{
		Use:   "eval <query> [field=value...]",
		Short: "Evaluate a query against an ad-hoc record",
		Long: `Evaluate a query against a record built from field=value arguments,
using the default comparison rules for every field. Exits 0 when the query
evaluates to true and 1 when it evaluates to false.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}
}

func runEval(opts *EvalOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	expr, err := gsp.Parse(args[0])
	if err != nil {
		_ = formatter.Error(ErrCodeSyntax, err.Error())
		return WrapExitError(ExitCommandError, "parse failed", err)
	}

	record := make(evaluate.Record, len(args)-1)
	for _, pair := range args[1:] {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			msg := fmt.Sprintf("record entry %q is not field=value", pair)
			_ = formatter.Error(ErrCodeGeneric, msg)
			return NewExitError(ExitCommandError, msg)
		}
		record[field] = value
	}

	fields := make([]string, 0, len(record))
	for field := range record {
		fields = append(fields, field)
	}

	result := evaluate.Interpret(expr, evaluate.DefaultRules(fields...), record)
	if err := formatter.Success(result); err != nil {
		return err
	}
	if !result {
		return NewExitError(ExitFailure, "query evaluated to false")
	}
	return nil
}
