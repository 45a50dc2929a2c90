package graph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedSchemaObjects(t *testing.T) {
	names := ExpectedSchemaObjects()

	assert.Len(t, names, len(schemaStatements)+1)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "user_id_unique")
	assert.Contains(t, names, "action_timestamp")
	assert.Contains(t, names, FullTextIndexName)
}

func TestSchemaStatementsAreIdempotent(t *testing.T) {
	for _, stmt := range schemaStatements {
		assert.Contains(t, stmt.query, "IF NOT EXISTS", stmt.name)
		assert.Contains(t, stmt.query, stmt.name, "statement declares its own name")
	}
	assert.Contains(t, fullTextStatement, "IF NOT EXISTS")
}
