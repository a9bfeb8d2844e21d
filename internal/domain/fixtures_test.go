package domain

func rating(v float64) *float64 {
	return &v
}

// scenarioItems is the three item catalog used by the end-to-end scenarios.
func scenarioItems() []Item {
	return []Item{
		{ID: "a", Name: "A", Category: "Audio", Brand: "Sonic", Price: 100, Availability: AvailabilityInStock},
		{ID: "b", Name: "B", Category: "Audio", Brand: "Sonic", Price: 50, Availability: AvailabilityInStock, IsOnSale: true},
		{ID: "c", Name: "C", Category: "Gaming", Brand: "Vortex", Price: 200, Availability: AvailabilityInStock},
	}
}

func richCatalog() []Item {
	return []Item{
		{ID: "p1", Name: "Aurora Headphones", Category: "Audio", Brand: "Sonic", Tags: []string{"wireless", "noise-cancelling"}, Price: 199, Availability: AvailabilityInStock, Rating: rating(4.5), IsFeatured: true},
		{ID: "p2", Name: "Pulse Earbuds", Category: "Audio", Brand: "Sonic", Tags: []string{"wireless"}, Price: 79, Availability: AvailabilityLowStock, Rating: rating(4.1), IsNew: true, IsOnSale: true},
		{ID: "p3", Name: "Bass Tower", Category: "Audio", Brand: "Boomly", Tags: []string{"speaker"}, Price: 349, Availability: AvailabilityOutOfStock, IsFeatured: true},
		{ID: "p4", Name: "Nebula Console", Category: "Gaming", Brand: "Vortex", Tags: []string{"console", "4k"}, Price: 499, Availability: AvailabilityInStock, Rating: rating(4.8), IsNew: true},
		{ID: "p5", Name: "Strike Controller", Category: "Gaming", Brand: "Vortex", Tags: []string{"wireless", "controller"}, Price: 59, Availability: AvailabilityInStock, Rating: rating(4.2), IsOnSale: true},
		{ID: "p6", Name: "Arc Keyboard", Category: "Gaming", Brand: "Keyforge", Tags: []string{"mechanical", "rgb"}, Price: 129, Availability: AvailabilityLowStock, Rating: rating(3.9), IsOnSale: true, IsNew: true},
		{ID: "p7", Name: "Lumen Lamp", Category: "Home Office", Brand: "Brightside", Price: 39, Availability: AvailabilityOutOfStock, IsOnSale: true},
		{ID: "p8", Name: "Desk Hub", Category: "home-office", Brand: "Brightside", Tags: []string{"usb-c"}, Price: 89, Availability: AvailabilityInStock, Rating: rating(4.0), IsFeatured: true},
	}
}

// sampleStates covers every dimension alone and in combination.
func sampleStates() map[string]FilterState {
	return map[string]FilterState{
		"unconstrained":   DefaultFilterState(),
		"category":        {Category: "audio"},
		"brands":          {Brands: []string{"Sonic", "Vortex"}},
		"tags":            {Tags: []string{"wireless"}},
		"price":           {PriceRange: &PriceRange{Min: 60, Max: 200}},
		"on sale":         {Flags: Flags{OnSale: true}},
		"in stock":        {Flags: Flags{InStock: true}},
		"new arrivals":    {Flags: Flags{NewArrivals: true}},
		"search":          {SearchText: "sonic"},
		"category+flags":  {Category: "Gaming", Flags: Flags{OnSale: true, InStock: true}},
		"brand+tag+price": {Brands: []string{"Sonic"}, Tags: []string{"wireless", "speaker"}, PriceRange: &PriceRange{Min: 0, Max: 150}},
		"everything": {
			SearchText: "o",
			Category:   "audio",
			Brands:     []string{"Sonic", "Boomly"},
			Tags:       []string{"wireless", "speaker"},
			PriceRange: &PriceRange{Min: 50, Max: 400},
			Flags:      Flags{InStock: true},
			SortKey:    SortPriceDesc,
			Page:       1,
		},
		"stale brand": {Brands: []string{"Discontinued"}},
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}
