package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	gsp "github.com/Hakukano/FLP-Go-GSP"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	return &cobra.Command{
		Use:           "parse <query>",
		Short:         "Parse a query and print its canonical expression tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}
}

func runParse(opts *ParseOptions, query string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	expr, err := gsp.Parse(query)
	if err != nil {
		_ = formatter.Error(ErrCodeSyntax, err.Error())
		return WrapExitError(ExitCommandError, "parse failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(exprTree(expr))
	}
	writeTree(cmd.OutOrStdout(), expr, 0)
	return nil
}

// exprTree renders the expression tree as nested maps for JSON output.
func exprTree(expr gsp.Expr) map[string]any {
	switch n := expr.(type) {
	case gsp.And:
		return map[string]any{"and": map[string]any{"left": exprTree(n.Left), "right": exprTree(n.Right)}}
	case gsp.Or:
		return map[string]any{"or": map[string]any{"left": exprTree(n.Left), "right": exprTree(n.Right)}}
	case gsp.Not:
		return map[string]any{"not": exprTree(n.Expr)}
	case gsp.Equal:
		return leafTree("equal", n.Field, n.Target)
	case gsp.EqualFold:
		return leafTree("equal_fold", n.Field, n.Target)
	case gsp.Greater:
		return leafTree("greater", n.Field, n.Target)
	case gsp.Less:
		return leafTree("less", n.Field, n.Target)
	case gsp.Wildcard:
		return leafTree("wildcard", n.Field, n.Target)
	case gsp.Regex:
		return leafTree("regex", n.Field, n.Target)
	case gsp.In:
		return map[string]any{"in": map[string]any{"field": n.Field, "targets": n.Targets}}
	case gsp.Null:
		return map[string]any{"null": map[string]any{"field": n.Field}}
	}
	return nil
}

func leafTree(kind, field, target string) map[string]any {
	return map[string]any{kind: map[string]any{"field": field, "target": target}}
}

// writeTree prints an indented text rendering of the expression tree.
func writeTree(w io.Writer, expr gsp.Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := expr.(type) {
	case gsp.And:
		fmt.Fprintf(w, "%sand\n", indent)
		writeTree(w, n.Left, depth+1)
		writeTree(w, n.Right, depth+1)
	case gsp.Or:
		fmt.Fprintf(w, "%sor\n", indent)
		writeTree(w, n.Left, depth+1)
		writeTree(w, n.Right, depth+1)
	case gsp.Not:
		fmt.Fprintf(w, "%snot\n", indent)
		writeTree(w, n.Expr, depth+1)
	case gsp.Equal:
		fmt.Fprintf(w, "%sequal %s %q\n", indent, n.Field, n.Target)
	case gsp.EqualFold:
		fmt.Fprintf(w, "%sequal_fold %s %q\n", indent, n.Field, n.Target)
	case gsp.Greater:
		fmt.Fprintf(w, "%sgreater %s %q\n", indent, n.Field, n.Target)
	case gsp.Less:
		fmt.Fprintf(w, "%sless %s %q\n", indent, n.Field, n.Target)
	case gsp.Wildcard:
		fmt.Fprintf(w, "%swildcard %s %q\n", indent, n.Field, n.Target)
	case gsp.Regex:
		fmt.Fprintf(w, "%sregex %s %q\n", indent, n.Field, n.Target)
	case gsp.In:
		fmt.Fprintf(w, "%sin %s %q\n", indent, n.Field, n.Targets)
	case gsp.Null:
		fmt.Fprintf(w, "%snull %s\n", indent, n.Field)
	}
}
