package pagination_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/common/pagination"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		items      []int
		requested  string
		wantNumber int
		wantItems  []int
	}{
		{name: "first of thirteen", items: seq(13), requested: "", wantNumber: 1, wantItems: seq(10)},
		{name: "second of thirteen", items: seq(13), requested: "2", wantNumber: 2, wantItems: []int{11, 12, 13}},
		{name: "overshoot", items: seq(13), requested: "999", wantNumber: 2, wantItems: []int{11, 12, 13}},
		{name: "garbage", items: seq(13), requested: "abc", wantNumber: 1, wantItems: seq(10)},
		{name: "negative", items: seq(13), requested: "-1", wantNumber: 1, wantItems: seq(10)},
		{name: "exactly one page", items: seq(10), requested: "2", wantNumber: 1, wantItems: seq(10)},
		{name: "empty", items: nil, requested: "5", wantNumber: 1, wantItems: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.Paginate(tt.items, pagination.DefaultPageSize, tt.requested)

			assert.Equal(t, tt.wantNumber, got.Number)
			assert.Equal(t, int64(len(tt.items)), got.Total)
			if diff := cmp.Diff(tt.wantItems, got.Items); diff != "" {
				t.Errorf("Items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginate_Invariants(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 35; n++ {
		items := seq(n)
		pages := pagination.NewWindow(int64(n), 10, "").TotalPages
		var joined []int
		for p := 1; p <= pages; p++ {
			page := pagination.Paginate(items, 10, strconv.Itoa(p))
			require.LessOrEqual(t, len(page.Items), 10)
			require.GreaterOrEqual(t, page.Number, 1)
			require.LessOrEqual(t, page.Number, page.TotalPages)
			joined = append(joined, page.Items...)
		}
		if n == 0 {
			assert.Empty(t, joined)
			continue
		}
		assert.Equal(t, items, joined, "pages concatenate to the collection for n=%d", n)
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	t.Parallel()

	items := seq(27)
	first := pagination.Paginate(items, 10, "3")
	second := pagination.Paginate(items, 10, "3")
	assert.Equal(t, first, second)
	assert.Equal(t, seq(27), items, "input is not modified")
}

func TestPaginate_ItemsCannotGrowIntoInput(t *testing.T) {
	t.Parallel()

	items := seq(13)
	page := pagination.Paginate(items, 10, "1")
	_ = append(page.Items, 100)
	assert.Equal(t, 11, items[10])
}

type sliceSequence struct {
	items      []string
	countErr   error
	sliceErr   error
	sliceCalls int
	gotOffset  int
	gotLimit   int
}

func (s *sliceSequence) Count(context.Context) (int64, error) {
	return int64(len(s.items)), s.countErr
}

func (s *sliceSequence) Slice(_ context.Context, offset, limit int) ([]string, error) {
	s.sliceCalls++
	s.gotOffset, s.gotLimit = offset, limit
	if s.sliceErr != nil {
		return nil, s.sliceErr
	}
	end := min(offset+limit, len(s.items))
	return s.items[offset:end], nil
}

func TestPaginateSequence(t *testing.T) {
	t.Parallel()

	items := make([]string, 13)
	for i := range items {
		items[i] = "post-" + strconv.Itoa(i+1)
	}

	t.Run("fetches only the window", func(t *testing.T) {
		s := &sliceSequence{items: items}
		page, err := pagination.PaginateSequence[string](context.Background(), s, 10, "2")
		require.NoError(t, err)

		assert.Equal(t, 2, page.Number)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, []string{"post-11", "post-12", "post-13"}, page.Items)
		assert.Equal(t, 10, s.gotOffset)
		assert.Equal(t, 10, s.gotLimit)
		assert.True(t, page.HasPrevious())
		assert.False(t, page.HasNext())
	})

	t.Run("empty collection skips slice", func(t *testing.T) {
		s := &sliceSequence{}
		page, err := pagination.PaginateSequence[string](context.Background(), s, 10, "4")
		require.NoError(t, err)

		assert.Equal(t, 1, page.Number)
		assert.Empty(t, page.Items)
		assert.NotNil(t, page.Items)
		assert.Zero(t, s.sliceCalls)
	})

	t.Run("count error", func(t *testing.T) {
		boom := errors.New("boom")
		s := &sliceSequence{items: items, countErr: boom}
		_, err := pagination.PaginateSequence[string](context.Background(), s, 10, "1")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("slice error", func(t *testing.T) {
		boom := errors.New("boom")
		s := &sliceSequence{items: items, sliceErr: boom}
		_, err := pagination.PaginateSequence[string](context.Background(), s, 10, "1")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("sequence funcs adapter", func(t *testing.T) {
		f := pagination.SequenceFuncs[int]{
			CountFunc: func(context.Context) (int64, error) { return 3, nil },
			SliceFunc: func(_ context.Context, offset, limit int) ([]int, error) {
				return []int{7, 8, 9}[offset:min(offset+limit, 3)], nil
			},
		}
		page, err := pagination.PaginateSequence[int](context.Background(), f, 2, "2")
		require.NoError(t, err)
		assert.Equal(t, []int{9}, page.Items)
	})
}
