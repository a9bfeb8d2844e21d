package storage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/storefront-kit/facetq/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"catalog.json", FormatJSON},
		{"dir/CATALOG.JSON", FormatJSON},
		{"catalog.yaml", FormatYAML},
		{"catalog.yml", FormatYAML},
		{"catalog.toml", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DetectFormat("catalog.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeShapes(t *testing.T) {
	items, err := Decode(FormatJSON, []byte(jsonCatalog))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	require.NotNil(t, items[0].Rating)
	assert.Equal(t, 4.5, *items[0].Rating)
	assert.Nil(t, items[1].Rating)

	items, err = Decode(FormatJSON, []byte(`{"items": [{"id": "k", "availability": "in-stock"}]}`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "k", items[0].ID)

	items, err = Decode(FormatYAML, []byte(yamlCatalog))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"outdoor", "night"}, items[0].Tags)
	assert.True(t, items[0].IsNew)

	items, err = Decode(FormatYAML, []byte("- id: s\n  availability: low-stock\n"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.AvailabilityLowStock, items[0].Availability)

	items, err = Decode(FormatTOML, []byte(tomlCatalog))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 300.0, items[0].Price)
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	items, err := Decode(FormatJSON, []byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = Decode(FormatYAML, []byte(""))
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = Decode(FormatJSON, []byte("[{"))
	assert.Error(t, err)
	_, err = Decode(FormatYAML, []byte("items: [unclosed"))
	assert.Error(t, err)
	_, err = Decode(FormatTOML, []byte("[[items]\n"))
	assert.Error(t, err)
	_, err = Decode(Format("xml"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncodeDecodeEachFormat(t *testing.T) {
	r := 3.5
	want := []domain.Item{
		{ID: "a", Name: "Alpha", Category: "Gear", Brand: "Acme", Tags: []string{"x"}, Price: 10,
			Availability: domain.AvailabilityInStock, Rating: &r, IsNew: true},
		{ID: "b", Name: "Beta", Category: "Gear", Brand: "Zed", Price: 20,
			Availability: domain.AvailabilityOutOfStock, IsOnSale: true},
	}
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(format, want)
			require.NoError(t, err)
			got, err := Decode(format, data)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
