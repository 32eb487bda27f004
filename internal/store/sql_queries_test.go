// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListNotesQuery_SQLContainsParts(t *testing.T) {
	userID := int64(42)

	query, args, err := buildListNotesQuery(userID)
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 1)
	require.Equal(t, userID, args[0])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from notes n")
	require.Contains(t, q, "left join files f")
	require.Contains(t, q, "where")
	require.Contains(t, q, "n.user_id")
	require.Contains(t, q, "order by n.note_id")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")
}

func Test_buildListNotesQuery_SelectsAllExpectedColumns(t *testing.T) {
	query, _, err := buildListNotesQuery(1)
	require.NoError(t, err)

	q := strings.ToLower(query)

	// Check that all expected columns are present in the SELECT section.
	// This is a "contains" check; it does not enforce order but catches regressions quickly.
	cols := []string{
		"n.note_id",
		"n.user_id",
		"n.title",
		"n.body",
		"n.done",
		"n.created_at",
		"f.file_id",
		"f.file_name",
		"f.size_label",
	}
	for _, col := range cols {
		assert.Contains(t, q, col)
	}
}

func Test_buildSearchNotesQuery_SingleKeyword(t *testing.T) {
	query, args, err := buildSearchNotesQuery(42, []string{"milk"})
	require.NoError(t, err)

	q := strings.ToLower(query)

	// case-insensitive matching over both text columns
	require.Contains(t, q, "ilike")
	require.Contains(t, q, "n.title")
	require.Contains(t, q, "n.body")
	require.Contains(t, q, " or ")

	// owner scope plus one pattern per column
	require.Len(t, args, 3)
	assert.Equal(t, int64(42), args[0])
	assert.Equal(t, "%milk%", args[1])
	assert.Equal(t, "%milk%", args[2])
}

func Test_buildSearchNotesQuery_MultipleKeywords(t *testing.T) {
	query, args, err := buildSearchNotesQuery(42, []string{"milk", "eggs"})
	require.NoError(t, err)

	// OR-disjunction across all tokens: any token may match either column
	require.Len(t, args, 5)
	assert.Equal(t, int64(42), args[0])
	assert.ElementsMatch(t, []any{"%milk%", "%eggs%", "%milk%", "%eggs%"}, args[1:])

	// every positional placeholder must be rendered
	for _, placeholder := range []string{"$1", "$2", "$3", "$4", "$5"} {
		require.Contains(t, query, placeholder)
	}
}

func Test_buildSearchNotesQuery_KeepsOwnerScope(t *testing.T) {
	query, _, err := buildSearchNotesQuery(7, []string{"anything"})
	require.NoError(t, err)

	q := strings.ToLower(query)

	// the keyword disjunction must never widen the query beyond one owner
	require.Contains(t, q, "n.user_id")
	require.Contains(t, q, "order by n.note_id")
}
