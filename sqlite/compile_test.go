package sqlite_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gsp "github.com/Hakukano/FLP-Go-GSP"
	"github.com/Hakukano/FLP-Go-GSP/sqlite"
)

func mustParse(t *testing.T, query string) gsp.Expr {
	t.Helper()
	expr, err := gsp.Parse(query)
	require.NoError(t, err)
	return expr
}

func TestInterpret_Comparisons(t *testing.T) {
	types := sqlite.Types{
		"name": sqlite.TypeText,
		"age":  sqlite.TypeBigInt,
	}

	tests := []struct {
		name     string
		query    string
		fragment string
		binds    []sqlite.Value
	}{
		{
			name:     "equal",
			query:    `("name" = "Alice")`,
			fragment: "name = ?",
			binds:    []sqlite.Value{sqlite.Text("Alice")},
		},
		{
			name:     "equal fold uses LIKE",
			query:    `("name" ~ "alice")`,
			fragment: "name LIKE ?",
			binds:    []sqlite.Value{sqlite.Text("alice")},
		},
		{
			name:     "greater with typed bind",
			query:    `("age" > "30")`,
			fragment: "age > ?",
			binds:    []sqlite.Value{sqlite.BigInt(30)},
		},
		{
			name:     "less with typed bind",
			query:    `("age" < "30")`,
			fragment: "age < ?",
			binds:    []sqlite.Value{sqlite.BigInt(30)},
		},
		{
			name:     "wildcard translates metacharacters",
			query:    `("name" * "Al*ce?")`,
			fragment: "name LIKE ?",
			binds:    []sqlite.Value{sqlite.Text("Al%ce_")},
		},
		{
			name:     "regex degrades to equality",
			query:    `("name" $ "^Al")`,
			fragment: "name = ?",
			binds:    []sqlite.Value{sqlite.Text("^Al")},
		},
		{
			name:     "membership",
			query:    `("name" ? ["Alice", "Bob"])`,
			fragment: "name IN (?, ?)",
			binds:    []sqlite.Value{sqlite.Text("Alice"), sqlite.Text("Bob")},
		},
		{
			name:     "empty membership is constant false",
			query:    `("name" ? [])`,
			fragment: "FALSE",
			binds:    nil,
		},
		{
			name:     "null check",
			query:    `("name" -)`,
			fragment: "name IS NULL",
			binds:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragment, binds, err := sqlite.Interpret(mustParse(t, tt.query), nil, types)
			require.NoError(t, err)
			assert.Equal(t, tt.fragment, fragment)
			assert.Equal(t, tt.binds, binds)
		})
	}
}

func TestInterpret_Renames(t *testing.T) {
	renames := sqlite.Renames{"sex": "sex_col"}
	types := sqlite.Types{"sex": sqlite.TypeText}

	fragment, binds, err := sqlite.Interpret(
		mustParse(t, `("sex" ? ["Male", "Other"])`), renames, types)
	require.NoError(t, err)
	assert.Equal(t, "sex_col IN (?, ?)", fragment)
	assert.Equal(t, []sqlite.Value{sqlite.Text("Male"), sqlite.Text("Other")}, binds)
}

func TestInterpret_Composites(t *testing.T) {
	types := sqlite.Types{
		"a": sqlite.TypeBigInt,
		"b": sqlite.TypeBigInt,
	}

	tests := []struct {
		name     string
		query    string
		fragment string
		binds    []sqlite.Value
	}{
		{
			name:     "conjunction",
			query:    `(("a" = "1") & ("b" = "2"))`,
			fragment: "(a = ? AND b = ?)",
			binds:    []sqlite.Value{sqlite.BigInt(1), sqlite.BigInt(2)},
		},
		{
			name:     "disjunction",
			query:    `(("a" = "1") | ("b" = "2"))`,
			fragment: "(a = ? OR b = ?)",
			binds:    []sqlite.Value{sqlite.BigInt(1), sqlite.BigInt(2)},
		},
		{
			name:     "negation",
			query:    `(!("a" = "1"))`,
			fragment: "(NOT a = ?)",
			binds:    []sqlite.Value{sqlite.BigInt(1)},
		},
		{
			name:     "binds follow placeholder order",
			query:    `((("a" = "1") | ("b" = "2")) & ("a" > "3"))`,
			fragment: "((a = ? OR b = ?) AND a > ?)",
			binds:    []sqlite.Value{sqlite.BigInt(1), sqlite.BigInt(2), sqlite.BigInt(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragment, binds, err := sqlite.Interpret(mustParse(t, tt.query), nil, types)
			require.NoError(t, err)
			assert.Equal(t, tt.fragment, fragment)
			assert.Equal(t, tt.binds, binds)
		})
	}
}

func TestInterpret_Errors(t *testing.T) {
	types := sqlite.Types{"age": sqlite.TypeBigInt}

	t.Run("unknown field", func(t *testing.T) {
		fragment, binds, err := sqlite.Interpret(mustParse(t, `("name" = "Alice")`), nil, types)
		require.Error(t, err)
		assert.Empty(t, fragment)
		assert.Nil(t, binds)

		var unknownErr *sqlite.UnknownFieldError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "name", unknownErr.Field)
	})

	t.Run("unknown field in null check", func(t *testing.T) {
		_, _, err := sqlite.Interpret(mustParse(t, `("name" -)`), nil, types)

		var unknownErr *sqlite.UnknownFieldError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "name", unknownErr.Field)
	})

	t.Run("literal parse failure", func(t *testing.T) {
		_, _, err := sqlite.Interpret(mustParse(t, `("age" > "old")`), nil, types)
		require.Error(t, err)

		var parseErr *sqlite.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "age", parseErr.Field)
		assert.Equal(t, "old", parseErr.Literal)
		assert.Equal(t, sqlite.TypeBigInt, parseErr.Type)
		assert.Error(t, parseErr.Err)
	})

	t.Run("error in second leaf aborts", func(t *testing.T) {
		fragment, binds, err := sqlite.Interpret(
			mustParse(t, `(("age" = "1") & ("age" > "old"))`), nil, types)
		require.Error(t, err)
		assert.Empty(t, fragment)
		assert.Nil(t, binds)

		var parseErr *sqlite.ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("empty membership skips field lookup", func(t *testing.T) {
		fragment, binds, err := sqlite.Interpret(mustParse(t, `("name" ? [])`), nil, types)
		require.NoError(t, err)
		assert.Equal(t, "FALSE", fragment)
		assert.Nil(t, binds)
	})
}

func TestInterpret_WildcardTranslatesOnce(t *testing.T) {
	types := sqlite.Types{"note": sqlite.TypeText}

	// Literal % and _ in the operand pass through untouched.
	_, binds, err := sqlite.Interpret(mustParse(t, `("note" * "10% off_*?")`), nil, types)
	require.NoError(t, err)
	assert.Equal(t, []sqlite.Value{sqlite.Text("10% off_%_")}, binds)
}

func TestInterpret_GoldenFragment(t *testing.T) {
	renames := sqlite.Renames{"status": "account_status"}
	types := sqlite.Types{
		"name":   sqlite.TypeText,
		"age":    sqlite.TypeBigInt,
		"status": sqlite.TypeText,
	}

	query := `((("name" = "Alice") & ("age" > "30")) | (!("status" ? ["frozen", "closed"])))`
	fragment, binds, err := sqlite.Interpret(mustParse(t, query), renames, types)
	require.NoError(t, err)
	require.Len(t, binds, 4)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "nested_fragment", []byte(fragment))
}
