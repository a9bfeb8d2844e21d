package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSortKey_IsValid(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		want bool
	}{
		{"featured", SortFeatured, true},
		{"price asc", SortPriceAsc, true},
		{"price desc", SortPriceDesc, true},
		{"rating", SortRating, true},
		{"newest", SortNewest, true},
		{"invalid", SortKey("cheapest"), false},
		{"empty", SortKey(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.IsValid())
		})
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"featured", SortFeatured, false},
		{"priceAsc", SortPriceAsc, false},
		{"price-asc", SortPriceAsc, false},
		{"PRICE_DESC", SortPriceDesc, false},
		{" rating ", SortRating, false},
		{"newest", SortNewest, false},
		{"oldest", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortKey_Next(t *testing.T) {
	assert.Equal(t, SortPriceAsc, SortFeatured.Next())
	assert.Equal(t, SortFeatured, SortNewest.Next())
	assert.Equal(t, SortFeatured, SortKey("bogus").Next())
}

func TestSortItems_PriceAscScenario(t *testing.T) {
	got := SortItems(scenarioItems(), SortPriceAsc)
	assert.Equal(t, []string{"B", "A", "C"}, names(got))
}

func TestSortItems_Keys(t *testing.T) {
	items := richCatalog()

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortFeatured, []string{"p1", "p3", "p8", "p2", "p4", "p5", "p6", "p7"}},
		{SortPriceAsc, []string{"p7", "p5", "p2", "p8", "p6", "p1", "p3", "p4"}},
		{SortPriceDesc, []string{"p4", "p3", "p1", "p6", "p8", "p2", "p5", "p7"}},
		{SortRating, []string{"p4", "p1", "p5", "p2", "p8", "p6", "p3", "p7"}},
		{SortNewest, []string{"p2", "p4", "p6", "p1", "p3", "p5", "p7", "p8"}},
		{SortKey("unknown"), []string{"p1", "p3", "p8", "p2", "p4", "p5", "p6", "p7"}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(SortItems(items, tt.key))); diff != "" {
				t.Errorf("SortItems(%s) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}

func TestSortItems_TiesKeepSourceOrder(t *testing.T) {
	items := []Item{
		{ID: "1", Price: 10},
		{ID: "2", Price: 5},
		{ID: "3", Price: 10},
		{ID: "4", Price: 5},
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(SortItems(items, SortPriceAsc)))
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(SortItems(items, SortPriceDesc)))
}

func TestSortItems_Idempotent(t *testing.T) {
	items := richCatalog()
	for _, key := range SortKeys() {
		t.Run(key.String(), func(t *testing.T) {
			once := SortItems(items, key)
			twice := SortItems(once, key)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("re-sorting changed order (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestSortItems_SwitchingKeysOnlyUsesPriorOrderForTies(t *testing.T) {
	items := richCatalog()
	direct := SortItems(items, SortPriceAsc)
	viaRating := SortItems(SortItems(items, SortRating), SortPriceAsc)
	assert.Equal(t, ids(direct), ids(viaRating), "prices are distinct, so prior order must not leak")
}

func TestSortItems_DoesNotMutateInput(t *testing.T) {
	items := richCatalog()
	before := ids(items)
	_ = SortItems(items, SortPriceDesc)
	assert.Equal(t, before, ids(items))
}

func TestSortItems_Empty(t *testing.T) {
	assert.Empty(t, SortItems(nil, SortRating))
	assert.Len(t, SortItems([]Item{{ID: "solo"}}, SortRating), 1)
}

func TestSortItems_RatingKeepsUnratedLast(t *testing.T) {
	items := []Item{
		{ID: "unrated"},
		{ID: "negative", Rating: rating(-3)},
		{ID: "zero", Rating: rating(0)},
		{ID: "unrated-2"},
		{ID: "high", Rating: rating(4.5)},
	}
	assert.Equal(t, []string{"high", "zero", "negative", "unrated", "unrated-2"}, ids(SortItems(items, SortRating)))
}
