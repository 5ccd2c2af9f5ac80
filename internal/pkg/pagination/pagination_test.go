package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of many", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, false, true},
		{"exact multiple", 1, 20, 40, 2, true, false},
		{"empty", 1, 20, 0, 0, false, false},
		{"single short page", 1, 20, 5, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := (tt.page - 1) * tt.limit
			meta := GetMeta(&Params{Page: tt.page, Limit: tt.limit, Offset: offset}, tt.total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasNext, meta.HasNext)
			assert.Equal(t, tt.hasPrev, meta.HasPrev)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
