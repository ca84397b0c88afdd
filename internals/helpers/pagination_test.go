package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(101, 2, 25, 25)
	assert.Equal(t, 5, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, int64(101), p.Total)

	p = BuildPagination(0, 1, 25, 0)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestPagingParamsOffset(t *testing.T) {
	p := PagingParams{Page: 3, PerPage: 50}
	assert.Equal(t, 50, p.Limit())
	assert.Equal(t, 100, p.Offset())
}

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "person_created_at",
		"full_name":  "person_full_name",
	}

	p := PagingParams{SortBy: "full_name", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "person_full_name ASC", clause)

	// unknown key falls back to the default column
	p = PagingParams{SortBy: "password; DROP TABLE users", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "person_created_at DESC", clause)

	p = PagingParams{}
	_, err = p.SafeOrderClause(map[string]string{}, "missing")
	assert.Error(t, err)
}
