package parser_test

import (
	"testing"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlshift/sqlshift/parser"
)

// Queries that are valid in both our grammar and ClickHouse. The
// AfterShip parser acts as an independent oracle: everything we accept
// here it must accept too. Bare UNION is excluded because ClickHouse
// requires UNION ALL or UNION DISTINCT.
var oracleQueries = []string{
	"SELECT 1",
	"SELECT a, b, c FROM t",
	"SELECT * FROM t",
	"SELECT a FROM t WHERE x > 1",
	"SELECT a FROM t WHERE x = 1 AND y < 2",
	"SELECT a, SUM(b) FROM t GROUP BY a",
	"SELECT a, SUM(b) FROM t GROUP BY a HAVING SUM(b) > 10",
	"SELECT a FROM t ORDER BY a DESC",
	"SELECT a FROM t1 JOIN t2 ON t1.id = t2.id",
	"SELECT a FROM t1 LEFT OUTER JOIN t2 ON t1.id = t2.id",
	"SELECT a FROM t1 CROSS JOIN t2",
	"SELECT a + b * c FROM t",
	"SELECT -a FROM t",
	"SELECT a FROM t WHERE x BETWEEN 1 AND 10",
	"SELECT a FROM t WHERE x IN (1, 2, 3)",
	"SELECT a FROM t WHERE x IS NOT NULL",
	"SELECT CASE WHEN a > 1 THEN 'big' ELSE 'small' END FROM t",
	"SELECT COUNT(*) FROM t",
	"SELECT COUNT(DISTINCT a) FROM t",
	"SELECT CAST(a AS INT) FROM t",
	"SELECT COALESCE(a, b, 0) FROM t",
	"SELECT MAX(a), MIN(b), AVG(c) FROM t",
	"SELECT ROW_NUMBER() OVER (PARTITION BY k ORDER BY v) FROM t",
	"SELECT a AS x FROM t",
	"SELECT t.a FROM t",
	"SELECT t.a FROM db1.t",
	"SELECT a FROM (SELECT a FROM t) sub",
	"SELECT a FROM t UNION ALL SELECT a FROM u",
	"WITH x AS (SELECT a FROM t) SELECT a FROM x",
	"SELECT a FROM t; SELECT b FROM u",
}

func TestOracleAgreement(t *testing.T) {
	for _, query := range oracleQueries {
		t.Run(query, func(t *testing.T) {
			_, err := parser.Parse(lex(t, query))
			require.NoError(t, err, "our parser rejected: %s", query)

			stmts, err := aftership.NewParser(query).ParseStmts()
			require.NoError(t, err, "oracle rejected: %s", query)
			assert.NotEmpty(t, stmts)
		})
	}
}

func TestOracleStatementCounts(t *testing.T) {
	for _, tt := range []struct {
		sql  string
		want int
	}{
		{"SELECT 1", 1},
		{"SELECT 1; SELECT 2", 2},
		{"SELECT 1; SELECT 2; SELECT 3", 3},
	} {
		roots, err := parser.Parse(lex(t, tt.sql))
		require.NoError(t, err)

		stmts, err := aftership.NewParser(tt.sql).ParseStmts()
		require.NoError(t, err)

		assert.Len(t, roots, tt.want)
		assert.Len(t, stmts, tt.want)
	}
}
