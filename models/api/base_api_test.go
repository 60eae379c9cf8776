package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginationGetPage(t *testing.T) {
	page, limit := Pagination{}.GetPage()
	require.Equal(t, 1, page)
	require.Equal(t, 10, limit)

	page, limit = Pagination{Page: 3, Limit: 25}.GetPage()
	require.Equal(t, 3, page)
	require.Equal(t, 25, limit)

	// верхняя граница размера страницы
	_, limit = Pagination{Limit: 500}.GetPage()
	require.Equal(t, 100, limit)

	page, limit = Pagination{Page: -1, Limit: -5}.GetPage()
	require.Equal(t, 1, page)
	require.Equal(t, 10, limit)
}

func TestResponseHelpers(t *testing.T) {
	resp := NewError("что-то пошло не так")
	require.Equal(t, "fail", resp.Status)
	require.Equal(t, "что-то пошло не так", resp.Message)

	resp = NewResponse("data")
	require.Equal(t, "success", resp.Status)

	scroller := NewScrollerResponse([]string{"a"}, 42)
	require.Equal(t, "success", scroller.Status)
	require.Equal(t, int64(42), scroller.RowCount)
}
