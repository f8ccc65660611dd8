package catalog

import "time"

const (
	defaultBrandName = "Everything Coconut"
	defaultTagline   = "Sustainable Handmade Coconut Products"
)

var seedTime = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func DefaultCollections() []Collection {
	return []Collection{
		{ID: "1", Name: "Kitchenware", CreatedAt: seedTime},
		{ID: "2", Name: "Soaps", CreatedAt: seedTime},
		{ID: "3", Name: "Mats", CreatedAt: seedTime},
		{ID: "4", Name: "Home Decor", CreatedAt: seedTime},
	}
}

func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Polished Coconut Shell Bowl",
			Description: "Hand-carved from a single coconut shell and finished with virgin coconut oil. Ideal for smoothie bowls and salads.",
			Price:       MustPrice("349"),
			Image:       "https://images.pexels.com/photos/6544376/pexels-photo-6544376.jpeg",
			Collection:  "Kitchenware",
			Featured:    true,
			CreatedAt:   seedTime,
		},
		{
			ID:          "2",
			Name:        "Coconut Shell Cup Set",
			Description: "Set of four drinking cups turned from mature coconut shells. Food safe and naturally heat resistant.",
			Price:       MustPrice("499"),
			Image:       "https://images.pexels.com/photos/5946720/pexels-photo-5946720.jpeg",
			Collection:  "Kitchenware",
			Featured:    false,
			CreatedAt:   seedTime,
		},
		{
			ID:          "3",
			Name:        "Coconut Wood Spoon Pair",
			Description: "Serving spoon and ladle cut from reclaimed coconut palm wood.",
			Price:       MustPrice("249.5"),
			Image:       "https://images.pexels.com/photos/4226806/pexels-photo-4226806.jpeg",
			Collection:  "Kitchenware",
			Featured:    false,
			CreatedAt:   seedTime,
		},
		{
			ID:          "4",
			Name:        "Cold Process Coconut Milk Soap",
			Description: "Gentle bar soap made with fresh coconut milk and cold pressed coconut oil.",
			Price:       MustPrice("149"),
			Image:       "https://images.pexels.com/photos/4202325/pexels-photo-4202325.jpeg",
			Collection:  "Soaps",
			Featured:    true,
			CreatedAt:   seedTime,
		},
		{
			ID:          "5",
			Name:        "Activated Charcoal Soap",
			Description: "Detox bar with charcoal from burnt coconut shells.",
			Price:       MustPrice("179"),
			Image:       "https://images.pexels.com/photos/3735149/pexels-photo-3735149.jpeg",
			Collection:  "Soaps",
			Featured:    false,
			CreatedAt:   seedTime,
		},
		{
			ID:          "6",
			Name:        "Coir Door Mat",
			Description: "Hard wearing entrance mat woven from natural coconut coir fibre.",
			Price:       MustPrice("599"),
			Image:       "https://images.pexels.com/photos/6580225/pexels-photo-6580225.jpeg",
			Collection:  "Mats",
			Featured:    true,
			CreatedAt:   seedTime,
		},
		{
			ID:          "7",
			Name:        "Coconut Shell Hanging Lamp",
			Description: "Intricately drilled shell lamp that throws patterned light across the room.",
			Price:       MustPrice("1299"),
			Image:       "https://images.pexels.com/photos/1123262/pexels-photo-1123262.jpeg",
			Collection:  "Home Decor",
			Featured:    false,
			CreatedAt:   seedTime,
		},
	}
}

func DefaultHeroProduct() HeroProduct {
	return HeroProduct{
		ProductID:   "1",
		Name:        "Polished Coconut Shell Bowl",
		Description: "Handcrafted from natural coconut shells, each bowl is unique and eco-friendly.",
		Image:       "https://images.pexels.com/photos/6544376/pexels-photo-6544376.jpeg",
		Price:       MustPrice("349"),
	}
}

func DefaultSettings() SiteSettings {
	return SiteSettings{
		HeroProduct: DefaultHeroProduct(),
		BrandName:   defaultBrandName,
		Tagline:     defaultTagline,
	}
}
