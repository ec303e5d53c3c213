// Package catalog holds the built-in product list and the optional YAML seed file.
package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"storefront/internal/domain"
)

const imageBase = "https://images.unsplash.com/"

// Default returns a fresh copy of the built-in catalog.
func Default() []domain.Product {
	return []domain.Product{
		{
			ID:          "p1",
			Name:        "Classic White T-Shirt",
			Price:       price("24.99"),
			Category:    domain.CategoryMen,
			Description: "Timeless white t-shirt made from premium cotton for everyday comfort.",
			Image:       imageBase + "photo-1521572163474-6864f9cf17ab",
			Colors:      []string{"white", "black", "gray"},
			Sizes:       []string{"S", "M", "L", "XL"},
			Featured:    true,
		},
		{
			ID:          "p2",
			Name:        "Slim Fit Jeans",
			Price:       price("59.99"),
			Category:    domain.CategoryMen,
			Description: "Modern slim fit jeans with a comfortable stretch fabric.",
			Image:       imageBase + "photo-1541099649105-f69ad21f3246",
			Colors:      []string{"blue", "black", "gray"},
			Sizes:       []string{"30", "32", "34", "36"},
			NewArrival:  true,
		},
		{
			ID:          "p3",
			Name:        "Cotton Cardigan",
			Price:       price("49.99"),
			Category:    domain.CategoryWomen,
			Description: "Light and stylish cardigan perfect for layering in any season.",
			Image:       imageBase + "photo-1617137968427-85924c800a22",
			Colors:      []string{"cream", "black", "navy"},
			Sizes:       []string{"XS", "S", "M", "L"},
			Featured:    true,
		},
		{
			ID:          "p4",
			Name:        "Summer Floral Dress",
			Price:       price("79.99"),
			Category:    domain.CategoryWomen,
			Description: "Beautiful floral pattern dress perfect for summer days.",
			Image:       imageBase + "photo-1585487000160-6ebcfceb0d03",
			Colors:      []string{"blue", "pink", "yellow"},
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			NewArrival:  true,
		},
		{
			ID:          "p5",
			Name:        "Leather Belt",
			Price:       price("29.99"),
			Category:    domain.CategoryAccessories,
			Description: "Classic genuine leather belt with a stylish metal buckle.",
			Image:       imageBase + "photo-1604176354204-9268737828e4",
			Colors:      []string{"brown", "black"},
			Sizes:       []string{"S", "M", "L"},
			Featured:    true,
		},
		{
			ID:          "p6",
			Name:        "Stainless Steel Watch",
			Price:       price("129.99"),
			Category:    domain.CategoryAccessories,
			Description: "Elegant stainless steel watch with a minimalist design.",
			Image:       imageBase + "photo-1523170335258-f5ed11844a49",
			Colors:      []string{"silver", "gold", "rose gold"},
			Sizes:       []string{"One Size"},
			NewArrival:  true,
		},
		{
			ID:          "p7",
			Name:        "Casual Button-Up Shirt",
			Price:       price("44.99"),
			Category:    domain.CategoryMen,
			Description: "Versatile button-up shirt for casual and semi-formal occasions.",
			Image:       imageBase + "photo-1598033129183-c4f50c736f10",
			Colors:      []string{"blue", "white", "patterns"},
			Sizes:       []string{"S", "M", "L", "XL"},
		},
		{
			ID:          "p8",
			Name:        "Wool Sweater",
			Price:       price("69.99"),
			Category:    domain.CategoryWomen,
			Description: "Warm and cozy wool sweater for the cold seasons.",
			Image:       imageBase + "photo-1551232864-3f0890e580d9",
			Colors:      []string{"beige", "gray", "red"},
			Sizes:       []string{"S", "M", "L"},
		},
	}
}

type seedFile struct {
	Products []domain.Product `yaml:"products"`
}

// Load reads a YAML seed file of the form
//
//	products:
//	  - id: p1
//	    name: Classic White T-Shirt
//	    price: 24.99
//	    ...
//
// An empty path returns Default(). Every product must validate and carry a unique id.
func Load(path string) ([]domain.Product, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Products))
	for i, p := range f.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog seed: product %d: id is required", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog seed: duplicate id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog seed: product %s: %w", p.ID, err)
		}
	}
	return f.Products, nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
