package mcpserver

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{name: "default limit returns all when under 100", items: items, offset: 0, limit: 0, want: []int{0, 1, 2, 3, 4}},
		{name: "explicit limit", items: items, offset: 0, limit: 2, want: []int{0, 1}},
		{name: "offset only", items: items, offset: 2, limit: 0, want: []int{2, 3, 4}},
		{name: "offset and limit", items: items, offset: 1, limit: 2, want: []int{1, 2}},
		{name: "offset beyond end", items: items, offset: 5, limit: 2, want: nil},
		{name: "negative offset", items: items, offset: -1, limit: 2, want: nil},
		{name: "nil slice", items: nil, offset: 0, limit: 2, want: nil},
		{name: "negative limit treated as default", items: items, offset: 0, limit: -1, want: []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_OverflowLimit(t *testing.T) {
	items := []int{0, 1, 2}
	assert.Equal(t, []int{1, 2}, paginate(items, 1, math.MaxInt))
}

func TestPaginate_MaxLimitCap(t *testing.T) {
	items := make([]int, cfg.MaxLimit+500)
	got := paginate(items, 0, cfg.MaxLimit+500)
	assert.Len(t, got, cfg.MaxLimit, "limit should be capped at MaxLimit")
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[string](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error returns empty string", err: nil, want: ""},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("goast: failed to read /home/user/secret/main.go: no such file"),
			want: "goast: failed to read <path>: no such file",
		},
		{
			name: "preserves non-path content",
			err:  fmt.Errorf("parse error at line 5"),
			want: "parse error at line 5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}
