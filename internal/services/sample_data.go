// internal/services/sample_data.go
package services

import "github.com/stylisthq/stylist-backend/internal/models"

func floatPtr(v float64) *float64 { return &v }

// SampleCatalog returns the built-in demo catalog used by the data
// initialization endpoint and the test suite.
func SampleCatalog() []models.Product {
	allSizes := []string{"XS", "S", "M", "L", "XL"}

	return []models.Product{
		{
			ProductID:   "SKU001",
			Name:        "Classic White Cotton T-Shirt",
			Category:    models.CategoryTops,
			Description: "Soft, breathable cotton t-shirt with a relaxed fit. A wardrobe essential that pairs with everything.",
			Price:       29.99,
			Sizes:       allSizes,
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU001.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"white"},
				Material:  "cotton",
				Style:     "casual",
				Brand:     "Basics Co",
				Occasions: []models.Occasion{models.OccasionCasual},
				Seasons:   []models.Season{models.SeasonAllSeason},
			},
		},
		{
			ProductID:   "SKU002",
			Name:        "High-Waisted Black Denim Jeans",
			Category:    models.CategoryBottoms,
			Description: "Flattering high-waisted jeans in stretch denim. Slim through the leg with a classic five-pocket design.",
			Price:       89.99,
			Sizes:       allSizes,
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU002.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"black"},
				Material:  "denim",
				Style:     "casual",
				Brand:     "Denim Works",
				Fit:       "slim",
				Occasions: []models.Occasion{models.OccasionCasual, models.OccasionWork},
				Seasons:   []models.Season{models.SeasonAllSeason},
			},
		},
		{
			ProductID:   "SKU003",
			Name:        "Silk Midi Wrap Dress",
			Category:    models.CategoryDresses,
			Description: "Elegant silk wrap dress in a flowing midi length. Flattering V-neckline and a self-tie waist.",
			Price:       249.99,
			SalePrice:   floatPtr(199.99),
			Sizes:       allSizes,
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU003.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"emerald", "navy"},
				Material:  "silk",
				Style:     "elegant",
				Brand:     "Maison Luxe",
				Occasions: []models.Occasion{models.OccasionCocktail, models.OccasionFormal, models.OccasionParty},
				Seasons:   []models.Season{models.SeasonSpring, models.SeasonSummer},
			},
		},
		{
			ProductID:   "SKU004",
			Name:        "Leather Bomber Jacket",
			Category:    models.CategoryOuterwear,
			Description: "Buttery soft leather bomber with ribbed cuffs and hem. An investment piece that gets better with age.",
			Price:       399.99,
			Sizes:       allSizes,
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU004.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"black", "brown"},
				Material:  "leather",
				Style:     "edgy",
				Brand:     "Urban Hide",
				Occasions: []models.Occasion{models.OccasionCasual, models.OccasionParty},
				Seasons:   []models.Season{models.SeasonFall, models.SeasonWinter, models.SeasonSpring},
			},
		},
		{
			ProductID:   "SKU005",
			Name:        "Canvas Low-Top Sneakers",
			Category:    models.CategoryShoes,
			Description: "Classic canvas sneakers with a rubber sole. Comfortable for all-day wear and easy to style.",
			Price:       59.99,
			Sizes:       allSizes,
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU005.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"white", "black", "navy"},
				Material:  "canvas",
				Style:     "casual",
				Brand:     "Street Step",
				Occasions: []models.Occasion{models.OccasionCasual, models.OccasionAthletic},
				Seasons:   []models.Season{models.SeasonAllSeason},
			},
		},
		{
			ProductID:   "SKU006",
			Name:        "Cashmere Knit Sweater",
			Category:    models.CategoryTops,
			Description: "Luxuriously soft cashmere sweater with a crew neck. Lightweight warmth for cooler days.",
			Price:       189.99,
			Sizes:       allSizes,
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU006.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"camel", "grey", "cream"},
				Material:  "cashmere",
				Style:     "classic",
				Brand:     "Maison Luxe",
				Occasions: []models.Occasion{models.OccasionCasual, models.OccasionWork},
				Seasons:   []models.Season{models.SeasonFall, models.SeasonWinter},
			},
		},
		{
			ProductID:   "SKU007",
			Name:        "Pleated Midi Skirt",
			Category:    models.CategoryBottoms,
			Description: "Flowing pleated skirt that moves beautifully. Elastic waistband for comfort, midi length for versatility.",
			Price:       79.99,
			Sizes:       allSizes,
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU007.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"blush", "black"},
				Material:  "polyester",
				Style:     "romantic",
				Brand:     "Femme Atelier",
				Occasions: []models.Occasion{models.OccasionWork, models.OccasionCasual, models.OccasionParty},
				Seasons:   []models.Season{models.SeasonSpring, models.SeasonSummer, models.SeasonFall},
			},
		},
		{
			ProductID:   "SKU008",
			Name:        "Leather Crossbody Bag",
			Category:    models.CategoryBags,
			Description: "Compact leather crossbody with an adjustable strap and gold-tone hardware. Fits the essentials.",
			Price:       149.99,
			Sizes:       []string{"One Size"},
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU008.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"tan", "black"},
				Material:  "leather",
				Style:     "classic",
				Brand:     "Urban Hide",
				Occasions: []models.Occasion{models.OccasionCasual, models.OccasionWork, models.OccasionParty},
				Seasons:   []models.Season{models.SeasonAllSeason},
			},
		},
		{
			ProductID:   "SKU009",
			Name:        "Gold Layered Necklace Set",
			Category:    models.CategoryJewelry,
			Description: "Set of three delicate gold-plated chains in graduated lengths. Wear together or separately.",
			Price:       49.99,
			Sizes:       []string{"One Size"},
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU009.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"gold"},
				Material:  "gold plated",
				Style:     "glamorous",
				Brand:     "Femme Atelier",
				Occasions: []models.Occasion{models.OccasionParty, models.OccasionCocktail, models.OccasionCasual},
				Seasons:   []models.Season{models.SeasonAllSeason},
			},
		},
		{
			ProductID:   "SKU010",
			Name:        "Linen Button-Up Shirt",
			Category:    models.CategoryTops,
			Description: "Breezy linen shirt with a relaxed cut. Roll the sleeves for an effortless warm-weather look.",
			Price:       69.99,
			Sizes:       allSizes,
			InStock:     true,
			Images:      []string{"https://placeholder.com/SKU010.jpg"},
			Attributes: models.ProductAttributes{
				Colors:    []string{"white", "sky blue", "sand"},
				Material:  "linen",
				Style:     "minimalist",
				Brand:     "Basics Co",
				Occasions: []models.Occasion{models.OccasionCasual, models.OccasionBeach, models.OccasionWork},
				Seasons:   []models.Season{models.SeasonSpring, models.SeasonSummer},
			},
		},
	}
}
