package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

const currencySymbol = "₹"

// Price encodes as a bare JSON number and decodes from a number or a string.
type Price struct {
	decimal.Decimal
}

func MustPrice(s string) Price { return Price{Decimal: decimal.RequireFromString(s)} }

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	return p.Decimal.UnmarshalJSON(b)
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Price     `json:"price"`
	Image       string    `json:"image"`
	Collection  string    `json:"collection"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p Product) DisplayPrice() string {
	return FormatPrice(p.Price)
}

func FormatPrice(p Price) string {
	return currencySymbol + p.StringFixed(2)
}

type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Image       string `json:"image"`
	Collection  string `json:"collection"`
	Featured    bool   `json:"featured"`
}

type ProductPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *Price  `json:"price,omitempty"`
	Image       *string `json:"image,omitempty"`
	Collection  *string `json:"collection,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
}

func (pp ProductPatch) apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Collection != nil {
		p.Collection = *pp.Collection
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
	return p
}

// Collection names are the join key for Product.Collection.
type Collection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CollectionInput struct {
	Name string `json:"name"`
}

type CollectionPatch struct {
	Name *string `json:"name,omitempty"`
}

func (cp CollectionPatch) apply(c Collection) Collection {
	if cp.Name != nil && *cp.Name != "" {
		c.Name = *cp.Name
	}
	return c
}

type HeroProduct struct {
	ProductID   string `json:"productId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       Price  `json:"price"`
}

type SiteSettings struct {
	HeroProduct HeroProduct `json:"heroProduct"`
	BrandName   string      `json:"brandName"`
	Tagline     string      `json:"tagline"`
}

type SettingsPatch struct {
	HeroProduct *HeroProduct `json:"heroProduct,omitempty"`
	BrandName   *string      `json:"brandName,omitempty"`
	Tagline     *string      `json:"tagline,omitempty"`
}

func (sp SettingsPatch) apply(s SiteSettings) SiteSettings {
	if sp.HeroProduct != nil {
		s.HeroProduct = *sp.HeroProduct
	}
	if sp.BrandName != nil {
		s.BrandName = *sp.BrandName
	}
	if sp.Tagline != nil {
		s.Tagline = *sp.Tagline
	}
	return s
}

type Snapshot struct {
	Products    []Product    `json:"products"`
	Collections []Collection `json:"collections"`
	Settings    SiteSettings `json:"settings"`
}
