package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	p := ParsePagination(url.Values{})
	assert.Equal(t, Pagination{Limit: DefaultLimit, Page: 1}, p)

	p = ParsePagination(url.Values{"limit": {"500"}, "page": {"3"}})
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 2*MaxLimit, p.Offset)

	p = ParsePagination(url.Values{"limit": {"-1"}, "page": {"zero"}})
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
}

func TestComputeMetaAndWindow(t *testing.T) {
	p := ParsePagination(url.Values{"limit": {"10"}, "page": {"2"}})
	p.ComputeMeta(25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)

	start, end := p.Window(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	p = ParsePagination(url.Values{"limit": {"10"}, "page": {"9"}})
	start, end = p.Window(25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestParsePaginationHugePage(t *testing.T) {
	p := ParsePagination(url.Values{"limit": {"48"}, "page": {"9223372036854775807"}})
	assert.GreaterOrEqual(t, p.Offset, 0)

	p.ComputeMeta(3)
	assert.False(t, p.HasNext)

	start, end := p.Window(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)

	start, end = Pagination{Offset: -48, Limit: 48}.Window(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)
}
