package httpx

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitOffset(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", target: "/api/properties", wantLimit: 50, wantOffset: 0},
		{name: "explicit", target: "/api/properties?limit=25&offset=75", wantLimit: 25, wantOffset: 75},
		{name: "clamped to max", target: "/api/properties?limit=9999", wantLimit: 200, wantOffset: 0},
		{name: "zero limit floors to one", target: "/api/properties?limit=0", wantLimit: 1, wantOffset: 0},
		{name: "negative offset floors to zero", target: "/api/properties?offset=-5", wantLimit: 50, wantOffset: 0},
		{name: "garbage falls back to defaults", target: "/api/properties?limit=abc&offset=xyz", wantLimit: 50, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestParseSortParam(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		query    string
		wantSort string
		wantDir  string
	}{
		{name: "separate params", query: "sort=created_at&dir=desc", wantSort: "created_at", wantDir: "desc"},
		{name: "colon syntax", query: "sort=created_at:asc", wantSort: "created_at", wantDir: "asc"},
		{name: "invalid colon direction drops dir", query: "sort=created_at:sideways", wantSort: "created_at", wantDir: ""},
		{name: "invalid separate direction drops dir", query: "sort=created_at&dir=sideways", wantSort: "created_at", wantDir: ""},
		{name: "uppercase direction normalized", query: "sort=title&dir=DESC", wantSort: "title", wantDir: "desc"},
		{name: "empty", query: "", wantSort: "", wantDir: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			sort, dir := ParseSortParam(q, "sort", "dir")
			assert.Equal(t, tt.wantSort, sort)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestOptionalQuery(t *testing.T) {
	t.Parallel()
	q := url.Values{}
	q.Set("owner_id", "  auth-9  ")
	q.Set("blank", "   ")

	got := optionalQuery(q, "owner_id")
	require.NotNil(t, got)
	assert.Equal(t, "auth-9", *got)

	assert.Nil(t, optionalQuery(q, "blank"))
	assert.Nil(t, optionalQuery(q, "absent"))
}
