package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/vegist/backend/internal/domain"
)

func multiplier(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func riceVariants(tierPrices [4]int64, ratePerKg int64) *domain.VariantConfig {
	return &domain.VariantConfig{
		Grains: []domain.VariantOption{
			{ID: "basmati", Label: "Basmati", Multiplier: multiplier("1.2"), Available: true},
			{ID: "sona-masoori", Label: "Sona Masoori", Available: true},
			{ID: "brown", Label: "Brown", Multiplier: multiplier("1.1"), Available: true},
			{ID: "jeera-samba", Label: "Jeera Samba", Multiplier: multiplier("1.3"), Available: false},
		},
		Polishes: []domain.VariantOption{
			{ID: "single", Label: "Single Polished", Available: true},
			{ID: "double", Label: "Double Polished", Multiplier: multiplier("0.9"), Available: true},
			{ID: "unpolished", Label: "Unpolished", Multiplier: multiplier("1.05"), Available: false},
		},
		Brands: []domain.BrandOption{
			{ID: "vegist", Label: "Vegist Select"},
			{ID: "india-gate", Label: "India Gate", Premium: true},
			{ID: "daawat", Label: "Daawat", Premium: true},
		},
		WeightTiers: []domain.WeightTier{
			{ID: "1kg", Label: "1 kg", Price: decimal.NewFromInt(tierPrices[0]), Available: true},
			{ID: "5kg", Label: "5 kg", Price: decimal.NewFromInt(tierPrices[1]), Available: true},
			{ID: "10kg", Label: "10 kg", Price: decimal.NewFromInt(tierPrices[2]), Available: true},
			{ID: "25kg", Label: "25 kg", Price: decimal.NewFromInt(tierPrices[3]), Available: false},
		},
		CustomRatePerKg: decimal.NewFromInt(ratePerKg),
	}
}

// SeedProducts returns the storefront's built-in catalog
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "p-101", Name: "Premium Basmati Rice 5 kg", Category: "grains", Brand: "India Gate",
			Price: "₹699", OriginalPrice: "₹799", Currency: "INR", Rating: 4.6, ReviewCount: 212,
			InStock: true, Description: "Long grain aged basmati, ideal for biryani and pulao.",
			Weight: "5 kg", Images: []string{"🍚"}, Stores: []string{"andheri", "bandra", "powai"},
			Variants: riceVariants([4]int64{149, 699, 1499, 3499}, 140),
		},
		{
			ID: "p-102", Name: "Sona Masoori Rice 10 kg", Category: "grains", Brand: "Daawat",
			Price: "₹1,199", OriginalPrice: "₹1,299", Currency: "INR", Rating: 4.2, ReviewCount: 98,
			InStock: true, Description: "Lightweight everyday rice from Andhra Pradesh.",
			Weight: "10 kg", Images: []string{"🍚"}, Stores: []string{"andheri", "powai"},
			Variants: riceVariants([4]int64{129, 599, 1199, 2899}, 115),
		},
		{
			ID: "p-103", Name: "Organic Brown Rice 1 kg", Category: "grains", Brand: "Vegist Select",
			Price: "₹189", Currency: "INR", Rating: 3.9, ReviewCount: 41,
			InStock: false, Description: "Whole grain brown rice, high in fibre.",
			Weight: "1 kg", Images: []string{"🍚"}, Stores: []string{"bandra"},
		},
		{
			ID: "p-201", Name: "Fresh Alphonso Mangoes 1 dozen", Category: "fruits", Brand: "Ratnagiri Farms",
			Price: "₹899", OriginalPrice: "₹1,099", Currency: "INR", Rating: 4.8, ReviewCount: 356,
			InStock: true, Description: "Hand picked Ratnagiri alphonso, naturally ripened.",
			Weight: "1 dozen", Images: []string{"🥭"}, Stores: []string{"andheri", "bandra"},
		},
		{
			ID: "p-202", Name: "Kashmiri Apples 1 kg", Category: "fruits", Brand: "Himalayan Orchards",
			Price: "₹220", Currency: "INR", Rating: 4.1, ReviewCount: 77,
			InStock: true, Description: "Crisp and sweet red apples from Kashmir valley.",
			Weight: "1 kg", Images: []string{"🍎"}, Stores: []string{"powai"},
		},
		{
			ID: "p-203", Name: "Robusta Bananas 12 pcs", Category: "fruits", Brand: "Vegist Select",
			Price: "₹60", Currency: "INR", Rating: 3.7, ReviewCount: 19,
			InStock: true, Description: "Everyday bananas, ripe and ready to eat.",
			Weight: "12 pcs", Images: []string{"🍌"}, Stores: []string{"andheri", "bandra", "powai"},
		},
		{
			ID: "p-301", Name: "Farm Fresh Tomatoes 500 g", Category: "vegetables", Brand: "Vegist Select",
			Price: "₹35", OriginalPrice: "₹45", Currency: "INR", Rating: 4.0, ReviewCount: 64,
			InStock: true, Description: "Juicy red tomatoes sourced from Nashik farms.",
			Weight: "500 g", Images: []string{"🍅"}, Stores: []string{"andheri", "powai"},
		},
		{
			ID: "p-302", Name: "Baby Spinach 250 g", Category: "vegetables", Brand: "Green Leaf",
			Price: "₹49", Currency: "INR", Rating: 4.4, ReviewCount: 23,
			InStock: false, Description: "Tender hydroponic spinach leaves, washed and packed.",
			Weight: "250 g", Images: []string{"🥬"}, Stores: []string{"bandra"},
		},
		{
			ID: "p-303", Name: "Red Onions 2 kg", Category: "vegetables", Brand: "Vegist Select",
			Price: "₹80", Currency: "INR", Rating: 3.5, ReviewCount: 12,
			InStock: true, Description: "Pungent red onions for everyday cooking.",
			Weight: "2 kg", Images: []string{"🧅"}, Stores: []string{"andheri", "bandra", "powai"},
		},
		{
			ID: "p-401", Name: "Amul Taaza Toned Milk 1 L", Category: "dairy", Brand: "Amul",
			Price: "₹56", Currency: "INR", Rating: 4.5, ReviewCount: 410,
			InStock: true, Description: "Pasteurised toned milk in a tetra pack.",
			Weight: "1 L", Images: []string{"🥛"}, Stores: []string{"andheri", "bandra", "powai"},
		},
		{
			ID: "p-402", Name: "Paneer Block 200 g", Category: "dairy", Brand: "Gowardhan",
			Price: "₹95", OriginalPrice: "₹110", Currency: "INR", Rating: 4.3, ReviewCount: 150,
			InStock: true, Description: "Soft fresh paneer made from cow milk.",
			Weight: "200 g", Images: []string{"🧀"}, Stores: []string{"powai"},
		},
		{
			ID: "p-403", Name: "Greek Yogurt 400 g", Category: "dairy", Brand: "Epigamia",
			Price: "₹120", Currency: "INR", Rating: 5.0, ReviewCount: 8,
			InStock: true, Description: "Thick, high protein natural yogurt.",
			Weight: "400 g", Images: []string{"🥣"}, Stores: []string{"bandra"},
		},
		{
			ID: "p-501", Name: "Cold Pressed Groundnut Oil 1 L", Category: "oils", Brand: "Vegist Select",
			Price: "₹310", OriginalPrice: "₹360", Currency: "INR", Rating: 4.2, ReviewCount: 55,
			InStock: true, Description: "Wood pressed groundnut oil with natural aroma.",
			Weight: "1 L", Images: []string{"🫙"}, Stores: []string{"andheri"},
		},
		{
			ID: "p-502", Name: "Extra Virgin Olive Oil 500 ml", Category: "oils", Brand: "Figaro",
			Price: "₹649", Currency: "INR", Rating: 4.6, ReviewCount: 91,
			InStock: false, Description: "Imported first cold press olive oil.",
			Weight: "500 ml", Images: []string{"🫒"}, Stores: []string{"bandra", "powai"},
		},
	}
}
