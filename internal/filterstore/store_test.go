package filterstore

import (
	"sync"
	"testing"

	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New(catalog())

	assert.Equal(t, domain.DefaultFilterState(), s.Get())
	bounds, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, domain.PriceRange{Min: 50, Max: 200}, bounds)
}

func TestNew_SeedIsNormalized(t *testing.T) {
	seed := domain.FilterState{
		Category:   " audio ",
		Brands:     []string{"Vortex", "Sonic", "Sonic"},
		PriceRange: &domain.PriceRange{Min: 500, Max: 10},
		Page:       0,
		SortKey:    "bogus",
	}
	s := New(catalog(), seed)
	got := s.Get()

	assert.Equal(t, "audio", got.Category)
	assert.Equal(t, []string{"Sonic", "Vortex"}, got.Brands)
	assert.Nil(t, got.PriceRange, "swapped range covering every price collapses")
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, domain.SortFeatured, got.SortKey)
}

func TestNewWithBounds_NoBounds(t *testing.T) {
	s := NewWithBounds(domain.PriceRange{}, false)
	_, ok := s.Bounds()
	assert.False(t, ok)

	got := s.Set(Partial{PriceRange: &domain.PriceRange{Min: 10, Max: 20}})
	require.NotNil(t, got.PriceRange)
	assert.Equal(t, domain.PriceRange{Min: 10, Max: 20}, *got.PriceRange)
}

func TestSet_MergesAndResetsPage(t *testing.T) {
	s := New(catalog())
	s.Set(Partial{Page: Ptr(3)})
	assert.Equal(t, 3, s.Get().Page, "page-only change keeps the page")

	got := s.Set(Partial{Category: Ptr("audio")})
	assert.Equal(t, "audio", got.Category)
	assert.Equal(t, 1, got.Page, "constraint change resets page")

	s.Set(Partial{Page: Ptr(2)})
	got = s.Set(Partial{SortKey: Ptr(domain.SortPriceAsc)})
	assert.Equal(t, 1, got.Page, "sort change resets page")
	assert.Equal(t, "audio", got.Category, "untouched fields survive")

	s.Set(Partial{Page: Ptr(2)})
	got = s.Set(Partial{Category: Ptr("audio"), Page: Ptr(5)})
	assert.Equal(t, 5, got.Page, "re-setting an identical value is not a change")
}

func TestSet_IgnoresCallerPageWhenConstraintsChange(t *testing.T) {
	s := New(catalog())
	got := s.Set(Partial{OnSale: Ptr(true), Page: Ptr(4)})
	assert.True(t, got.Flags.OnSale)
	assert.Equal(t, 1, got.Page)
}

func TestSet_CorrectsMalformedInput(t *testing.T) {
	s := New(catalog())
	got := s.Set(Partial{
		PriceRange: &domain.PriceRange{Min: 180, Max: 60},
		Page:       Ptr(-2),
		Limit:      Ptr(-1),
	})
	require.NotNil(t, got.PriceRange)
	assert.Equal(t, domain.PriceRange{Min: 60, Max: 180}, *got.PriceRange)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 0, got.Limit)

	got = s.Set(Partial{PriceRange: &domain.PriceRange{Min: 0, Max: 1000}})
	assert.Nil(t, got.PriceRange, "range clamped to full bounds is no constraint")
}

func TestSet_DoesNotAliasCallerSlices(t *testing.T) {
	s := New(catalog())
	brands := []string{"Sonic"}
	s.Set(Partial{Brands: &brands})
	brands[0] = "Mutated"

	got := s.Get()
	assert.Equal(t, []string{"Sonic"}, got.Brands)
	got.Brands[0] = "Mutated"
	assert.Equal(t, []string{"Sonic"}, s.Get().Brands)
}

func TestSet_EmptyPartialIsNoop(t *testing.T) {
	s := New(catalog())
	s.Set(Partial{Tags: Ptr([]string{"x"}), Page: Ptr(1)})
	before := s.Get()
	assert.True(t, Partial{}.IsEmpty())
	assert.Equal(t, before, s.Set(Partial{}))
}

func TestClear(t *testing.T) {
	s := New(catalog())
	s.Set(Partial{SearchText: Ptr("b"), Brands: Ptr([]string{"Sonic"}), SortKey: Ptr(domain.SortRating), InStock: Ptr(true)})

	assert.Equal(t, domain.DefaultFilterState(), s.Clear())
	assert.Equal(t, domain.DefaultFilterState(), s.Get())
}

func TestRemove(t *testing.T) {
	s := New(catalog())
	s.Set(Partial{
		SearchText:  Ptr("a"),
		Category:    Ptr("Audio"),
		Brands:      Ptr([]string{"Sonic", "Vortex"}),
		Tags:        Ptr([]string{"wireless"}),
		PriceRange:  &domain.PriceRange{Min: 60, Max: 150},
		OnSale:      Ptr(true),
		NewArrivals: Ptr(true),
	})

	got := s.Remove(domain.DimensionBrand, "Vortex")
	assert.Equal(t, []string{"Sonic"}, got.Brands)

	got = s.Remove(domain.DimensionBrand, "Unknown")
	assert.Equal(t, []string{"Sonic"}, got.Brands, "removing an unselected value is inert")

	got = s.Remove(domain.DimensionTag, "wireless")
	assert.Nil(t, got.Tags)

	got = s.Remove(domain.DimensionCategory, "gaming")
	assert.Equal(t, "Audio", got.Category, "other category left alone")
	got = s.Remove(domain.DimensionCategory, "audio")
	assert.Empty(t, got.Category, "matched by slug")

	got = s.Remove(domain.DimensionPrice, "")
	assert.Nil(t, got.PriceRange)

	got = s.Remove(domain.DimensionOnSale, "")
	assert.False(t, got.Flags.OnSale)
	assert.True(t, got.Flags.NewArrivals)

	got = s.Remove(domain.DimensionSearch, "ignored")
	assert.Empty(t, got.SearchText)
}

func TestRemove_ResetsPage(t *testing.T) {
	s := New(catalog())
	s.Set(Partial{Brands: Ptr([]string{"Sonic", "Vortex"})})
	s.Set(Partial{Page: Ptr(2)})

	got := s.Remove(domain.DimensionBrand, "Vortex")
	assert.Equal(t, 1, got.Page)
}

func TestSetCatalog_ReclampsPriceRange(t *testing.T) {
	s := New(catalog())
	s.Set(Partial{PriceRange: &domain.PriceRange{Min: 60, Max: 180}, Brands: Ptr([]string{"Vortex"})})
	s.Set(Partial{Page: Ptr(2)})

	refreshed := []domain.Item{
		{ID: "d", Name: "D", Category: "Audio", Brand: "Sonic", Price: 80, Availability: domain.AvailabilityInStock},
		{ID: "e", Name: "E", Category: "Audio", Brand: "Sonic", Price: 120, Availability: domain.AvailabilityInStock},
		{ID: "f", Name: "F", Category: "Gaming", Brand: "Sonic", Price: 300, Availability: domain.AvailabilityInStock},
	}
	got := s.SetCatalog(refreshed)

	require.NotNil(t, got.PriceRange)
	assert.Equal(t, domain.PriceRange{Min: 80, Max: 180}, *got.PriceRange)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, []string{"Vortex"}, got.Brands, "stale selection is kept")

	bounds, _ := s.Bounds()
	assert.Equal(t, domain.PriceRange{Min: 80, Max: 300}, bounds)
}

func TestSetCatalog_UnchangedKeepsPage(t *testing.T) {
	s := New(catalog())
	s.Set(Partial{Page: Ptr(2)})
	got := s.SetCatalog(catalog())
	assert.Equal(t, 2, got.Page)
}

func TestClampPage(t *testing.T) {
	s := New(catalog())
	s.Set(Partial{Page: Ptr(9)})

	assert.Equal(t, 2, s.ClampPage(3, 2).Page)
	assert.Equal(t, 1, s.ClampPage(0, 2).Page)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New(catalog())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			s.Set(Partial{Page: Ptr(i + 1)})
		}(i)
		go func() {
			defer wg.Done()
			s.SetCatalog(catalog())
		}()
		go func() {
			defer wg.Done()
			_ = s.Get()
		}()
	}
	wg.Wait()

	got := s.Get()
	assert.GreaterOrEqual(t, got.Page, 1)
	assert.Equal(t, domain.SortFeatured, got.SortKey)
}

func TestStore_DrivesPipeline(t *testing.T) {
	items := catalog()
	s := New(items)
	state := s.Set(Partial{SortKey: Ptr(domain.SortPriceAsc), Page: Ptr(2)})
	state = s.Set(Partial{Page: Ptr(2)})

	view := domain.Run(items, state, 2)
	assert.Equal(t, 2, view.Page)
	require.Len(t, view.PageItems, 1)
	assert.Equal(t, "C", view.PageItems[0].Name)

	state = s.Set(Partial{Category: Ptr("gaming")})
	view = domain.Run(items, state, 2)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.TotalCount)
}
