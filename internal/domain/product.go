package domain

import "github.com/shopspring/decimal"

// Weight is an optional unit+value pair, e.g. {LB 2.5}.
type Weight struct {
	Unit  string          `json:"unit"`
	Value decimal.Decimal `json:"value"`
}

// ProductRecord is a normalized product candidate extracted from one source row.
type ProductRecord struct {
	Row            int             `json:"row"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Weight         *Weight         `json:"weight,omitempty"`
	CategoryPath   CategoryPath    `json:"category_path"`
	ImageURL       string          `json:"image_url,omitempty"`
	SEOTitle       string          `json:"seo_title"`
	SEODescription string          `json:"seo_description"`
}

// SEO mirrors the remote SeoInput.
type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProductInput is the payload shared by product create and update.
type ProductInput struct {
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	ChargeTaxes    bool            `json:"chargeTaxes"`
	IsPublished    bool            `json:"isPublished"`
	TrackInventory bool            `json:"trackInventory"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	Weight         *Weight         `json:"weight,omitempty"`
	SEO            SEO             `json:"seo"`
}

// ProductCreateInput adds the product type, which is only accepted on creation.
type ProductCreateInput struct {
	ProductInput
	ProductType string `json:"productType"`
}

// Money is an amount in a currency as reported by the remote store.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NamedRef points at a remote object by id and carries its name for display.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Variant struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// ProductDetails is a product as currently stored by the remote store.
type ProductDetails struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublished bool      `json:"isPublished"`
	ChargeTaxes bool      `json:"chargeTaxes"`
	ProductType *NamedRef `json:"productType"`
	Category    *NamedRef `json:"category"`
	BasePrice   *Money    `json:"basePrice"`
	Weight      *Weight   `json:"weight"`
	SEO         SEO       `json:"seo"`
	Variants    []Variant `json:"variants"`
}
