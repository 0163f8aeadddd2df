package service

import (
	"context"
	"errors"
	"fmt"

	"catalog/loader/internal/client"
	"catalog/loader/internal/domain"
)

type fakeCategory struct {
	id       string
	name     string
	parentID string
}

type fakeProduct struct {
	id    string
	input domain.ProductInput
}

// fakeCatalog is an in-memory remote store that behaves like the GraphQL API:
// duplicate SKUs are rejected with a UNIQUE sku error.
type fakeCatalog struct {
	categories   []fakeCategory
	products     map[string]*fakeProduct
	productTypes map[string]string
	nextID       int

	createCalls []domain.ProductCreateInput
	lookupCalls []string
	updateCalls []updateCall
	forestCalls int

	createErr      error
	categoryErrFor string
	transportAt    string
	lookupMiss     bool
	forestErr      error
}

type updateCall struct {
	id    string
	input domain.ProductInput
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products:     make(map[string]*fakeProduct),
		productTypes: make(map[string]string),
	}
}

var _ client.CatalogClient = (*fakeCatalog)(nil)

func (f *fakeCatalog) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeCatalog) seedProduct(sku string) string {
	id := f.newID("prod")
	f.products[sku] = &fakeProduct{id: id, input: domain.ProductInput{SKU: sku, Name: "old " + sku}}
	return id
}

func (f *fakeCatalog) seedCategory(name, parentID string) string {
	id := f.newID("cat")
	f.categories = append(f.categories, fakeCategory{id: id, name: name, parentID: parentID})
	return id
}

func (f *fakeCatalog) FetchCategoryForest(context.Context) (*domain.CategoryForest, error) {
	f.forestCalls++
	if f.forestErr != nil {
		return nil, f.forestErr
	}
	nodes := make(map[string]*domain.CategoryNode)
	forest := &domain.CategoryForest{}
	for _, c := range f.categories {
		nodes[c.id] = &domain.CategoryNode{ID: c.id, Name: c.name}
	}
	for _, c := range f.categories {
		if c.parentID == "" {
			forest.Roots = append(forest.Roots, nodes[c.id])
			continue
		}
		parent := nodes[c.parentID]
		parent.Children = append(parent.Children, nodes[c.id])
	}
	return forest, nil
}

func (f *fakeCatalog) CreateCategory(_ context.Context, name, parentID string) (string, error) {
	if f.transportAt == "categoryCreate" {
		return "", &client.TransportError{Op: "categoryCreate", Err: errors.New("connection refused")}
	}
	if name == f.categoryErrFor {
		return "", &client.ValidationError{Op: "categoryCreate", Errors: []client.FieldError{{Field: "name", Message: "bad name", Code: "INVALID"}}}
	}
	return f.seedCategory(name, parentID), nil
}

func (f *fakeCatalog) FetchCategoryByName(_ context.Context, name string) (string, error) {
	for _, c := range f.categories {
		if c.name == name {
			return c.id, nil
		}
	}
	return "", client.ErrNotFound
}

func (f *fakeCatalog) FetchProductBySKU(_ context.Context, sku string) (string, error) {
	f.lookupCalls = append(f.lookupCalls, sku)
	if p, ok := f.products[sku]; ok && !f.lookupMiss {
		return p.id, nil
	}
	return "", fmt.Errorf("product with SKU %q: %w", sku, client.ErrNotFound)
}

func (f *fakeCatalog) FetchProduct(_ context.Context, id string) (*domain.ProductDetails, error) {
	for _, p := range f.products {
		if p.id == id {
			return &domain.ProductDetails{
				ID:          p.id,
				Name:        p.input.Name,
				Description: p.input.Description,
				IsPublished: p.input.IsPublished,
				ChargeTaxes: p.input.ChargeTaxes,
				Category:    &domain.NamedRef{ID: p.input.Category},
				BasePrice:   &domain.Money{Amount: p.input.BasePrice, Currency: "USD"},
				Weight:      p.input.Weight,
				SEO:         p.input.SEO,
				Variants:    []domain.Variant{{ID: p.id + "-v", SKU: p.input.SKU}},
			}, nil
		}
	}
	return nil, fmt.Errorf("product %q: %w", id, client.ErrNotFound)
}

func (f *fakeCatalog) CreateProduct(_ context.Context, input domain.ProductCreateInput) (string, error) {
	f.createCalls = append(f.createCalls, input)
	if f.transportAt == "productCreate" {
		return "", &client.TransportError{Op: "productCreate", StatusCode: 502, Err: errors.New("bad gateway")}
	}
	if f.createErr != nil {
		return "", f.createErr
	}
	if _, exists := f.products[input.SKU]; exists {
		return "", &client.ValidationError{Op: "productCreate", Errors: []client.FieldError{
			{Field: "sku", Message: "Product with this Sku already exists.", Code: "UNIQUE"},
		}}
	}
	id := f.newID("prod")
	f.products[input.SKU] = &fakeProduct{id: id, input: input.ProductInput}
	return id, nil
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, id string, input domain.ProductInput) (string, error) {
	f.updateCalls = append(f.updateCalls, updateCall{id: id, input: input})
	for _, p := range f.products {
		if p.id == id {
			p.input = input
			return input.Name, nil
		}
	}
	return "", &client.ValidationError{Op: "productUpdate", Errors: []client.FieldError{{Field: "id", Code: "NOT_FOUND"}}}
}

func (f *fakeCatalog) FetchAllProductIDs(context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.products))
	for _, p := range f.products {
		ids = append(ids, p.id)
	}
	return ids, nil
}

func (f *fakeCatalog) BulkDeleteProducts(_ context.Context, ids []string) (int, error) {
	deleted := 0
	for _, id := range ids {
		for sku, p := range f.products {
			if p.id == id {
				delete(f.products, sku)
				deleted++
			}
		}
	}
	return deleted, nil
}

func (f *fakeCatalog) FetchProductTypeByName(_ context.Context, name string) (string, error) {
	if id, ok := f.productTypes[name]; ok {
		return id, nil
	}
	return "", client.ErrNotFound
}

func (f *fakeCatalog) CreateProductType(_ context.Context, name string) (string, error) {
	id := f.newID("type")
	f.productTypes[name] = id
	return id, nil
}

// childNames lists the names of the categories whose parent is parentID.
func (f *fakeCatalog) childNames(parentID string) []string {
	names := make([]string, 0)
	for _, c := range f.categories {
		if c.parentID == parentID {
			names = append(names, c.name)
		}
	}
	return names
}
