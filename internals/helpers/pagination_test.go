package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		page    int
		perPage int
		want    Pagination
	}{
		{
			name: "middle page", total: 45, page: 2, perPage: 20,
			want: Pagination{Page: 2, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "last page", total: 45, page: 3, perPage: 20,
			want: Pagination{Page: 3, PerPage: 20, Total: 45, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result still has one page", total: 0, page: 1, perPage: 20,
			want: Pagination{Page: 1, PerPage: 20, Total: 0, TotalPages: 1, HasNext: false, HasPrev: false},
		},
		{
			name: "zero per page falls back", total: 10, page: 0, perPage: 0,
			want: Pagination{Page: 1, PerPage: 20, Total: 10, TotalPages: 1, HasNext: false, HasPrev: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPagination(tt.total, tt.page, tt.perPage))
		})
	}
}

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "user_created_at",
		"email":      "user_email",
	}

	got, err := SafeOrderClause(allowed, "email", "asc", "created_at")
	assert.NoError(t, err)
	assert.Equal(t, `"user_email" ASC`, got)

	// unknown keys fall back to the default, direction defaults to DESC
	got, err = SafeOrderClause(allowed, "password; DROP TABLE users", "", "created_at")
	assert.NoError(t, err)
	assert.Equal(t, `"user_created_at" DESC`, got)

	_, err = SafeOrderClause(allowed, "email", "asc", "missing")
	assert.NoError(t, err)

	_, err = SafeOrderClause(map[string]string{}, "", "", "created_at")
	assert.Error(t, err)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "springfield-high-school", Slugify("  Springfield High School! ", 180))
	assert.Equal(t, "a-b", Slugify("A___B", 180))
	assert.Equal(t, "abc", Slugify("abcdef", 3))
	assert.Equal(t, "", Slugify("!!!", 180))
}
