package client

import (
	"context"
	"fmt"
	"time"

	"catalog/loader/internal/config"
	"catalog/loader/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// CatalogClient is the set of remote catalog operations the importer relies on.
type CatalogClient interface {
	FetchCategoryForest(ctx context.Context) (*domain.CategoryForest, error)
	CreateCategory(ctx context.Context, name, parentID string) (string, error)
	FetchCategoryByName(ctx context.Context, name string) (string, error)
	FetchProductBySKU(ctx context.Context, sku string) (string, error)
	FetchProduct(ctx context.Context, id string) (*domain.ProductDetails, error)
	CreateProduct(ctx context.Context, input domain.ProductCreateInput) (string, error)
	UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (string, error)
	FetchAllProductIDs(ctx context.Context) ([]string, error)
	BulkDeleteProducts(ctx context.Context, ids []string) (int, error)
	FetchProductTypeByName(ctx context.Context, name string) (string, error)
	CreateProductType(ctx context.Context, name string) (string, error)
}

type saleorClient struct {
	rl         ratelimit.Limiter
	endpoint   string
	httpClient *resty.Client
}

func NewSaleorClient(cfg config.SaleorConfig) CatalogClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	} else {
		log.Warn("⚠️ No saleor.token configured, requests are anonymous")
	}

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using proxy: %s", cfg.Proxy)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &saleorClient{
		rl:         rl,
		endpoint:   cfg.BaseURL,
		httpClient: client,
	}
}

type categoryListNode struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent *struct {
		ID string `json:"id"`
	} `json:"parent"`
}

func (c *saleorClient) FetchCategoryForest(ctx context.Context) (*domain.CategoryForest, error) {
	nodes := make([]categoryListNode, 0)

	err := paginate(ctx, "categories", func(after string) (pageInfo, error) {
		var data struct {
			Categories struct {
				PageInfo pageInfo `json:"pageInfo"`
				Edges    []struct {
					Node categoryListNode `json:"node"`
				} `json:"edges"`
			} `json:"categories"`
		}
		vars := map[string]any{"first": pageSize, "after": cursor(after)}
		if err := c.execute(ctx, "categories", categoriesQuery, vars, &data); err != nil {
			return pageInfo{}, err
		}
		for _, edge := range data.Categories.Edges {
			nodes = append(nodes, edge.Node)
		}
		return data.Categories.PageInfo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	forest := buildForest(nodes)
	log.Infof("🌳 Fetched %d categories (%d top-level)", forest.Size(), len(forest.Roots))
	return forest, nil
}

func (c *saleorClient) CreateCategory(ctx context.Context, name, parentID string) (string, error) {
	vars := map[string]any{
		"input": map[string]any{"name": name},
	}
	if parentID != "" {
		vars["parent"] = parentID
	}

	var data struct {
		CategoryCreate struct {
			Category *struct {
				ID string `json:"id"`
			} `json:"category"`
			ProductErrors []FieldError `json:"productErrors"`
		} `json:"categoryCreate"`
	}
	if err := c.execute(ctx, "categoryCreate", categoryCreateMutation, vars, &data); err != nil {
		return "", err
	}
	if err := checkFieldErrors("categoryCreate", data.CategoryCreate.ProductErrors); err != nil {
		return "", err
	}
	if data.CategoryCreate.Category == nil {
		return "", &TransportError{Op: "categoryCreate", Err: fmt.Errorf("no category in response")}
	}

	return data.CategoryCreate.Category.ID, nil
}

// FetchCategoryByName searches categories and returns the one whose name matches exactly.
func (c *saleorClient) FetchCategoryByName(ctx context.Context, name string) (string, error) {
	id, err := c.searchByName(ctx, "categoriesByName", categoriesByNameQuery, "categories", name)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	return id, nil
}

func (c *saleorClient) FetchProductTypeByName(ctx context.Context, name string) (string, error) {
	id, err := c.searchByName(ctx, "productTypesByName", productTypesByNameQuery, "productTypes", name)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("product type %q: %w", name, ErrNotFound)
	}
	return id, nil
}

// searchByName pages a filtered connection until a node named exactly name shows up.
func (c *saleorClient) searchByName(ctx context.Context, op, query, field, name string) (string, error) {
	var found string

	err := paginate(ctx, op, func(after string) (pageInfo, error) {
		var data map[string]struct {
			PageInfo pageInfo `json:"pageInfo"`
			Edges    []struct {
				Node struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"node"`
			} `json:"edges"`
		}
		vars := map[string]any{"search": name, "first": pageSize, "after": cursor(after)}
		if err := c.execute(ctx, op, query, vars, &data); err != nil {
			return pageInfo{}, err
		}
		conn := data[field]
		for _, edge := range conn.Edges {
			if edge.Node.Name == name {
				found = edge.Node.ID
				return pageInfo{}, nil
			}
		}
		return conn.PageInfo, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", field, err)
	}

	return found, nil
}

// FetchProductBySKU scans the search results for a variant carrying exactly sku.
// The SKU is not the retrieval key on the remote side, so the search is only a prefilter.
func (c *saleorClient) FetchProductBySKU(ctx context.Context, sku string) (string, error) {
	var found string

	err := paginate(ctx, "productsBySku", func(after string) (pageInfo, error) {
		var data struct {
			Products struct {
				PageInfo pageInfo `json:"pageInfo"`
				Edges    []struct {
					Node struct {
						ID       string `json:"id"`
						Variants []struct {
							SKU string `json:"sku"`
						} `json:"variants"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		}
		vars := map[string]any{"search": sku, "first": pageSize, "after": cursor(after)}
		if err := c.execute(ctx, "productsBySku", productsBySKUQuery, vars, &data); err != nil {
			return pageInfo{}, err
		}
		for _, edge := range data.Products.Edges {
			for _, variant := range edge.Node.Variants {
				if variant.SKU == sku {
					found = edge.Node.ID
					return pageInfo{}, nil
				}
			}
		}
		return data.Products.PageInfo, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search products: %w", err)
	}
	if found == "" {
		return "", fmt.Errorf("product with SKU %q: %w", sku, ErrNotFound)
	}

	return found, nil
}

func (c *saleorClient) FetchProduct(ctx context.Context, id string) (*domain.ProductDetails, error) {
	var data struct {
		Product *struct {
			domain.ProductDetails
			SEOTitle       string `json:"seoTitle"`
			SEODescription string `json:"seoDescription"`
		} `json:"product"`
	}
	if err := c.execute(ctx, "product", productQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}

	product := data.Product.ProductDetails
	product.SEO = domain.SEO{Title: data.Product.SEOTitle, Description: data.Product.SEODescription}
	return &product, nil
}

func (c *saleorClient) CreateProduct(ctx context.Context, input domain.ProductCreateInput) (string, error) {
	var data struct {
		ProductCreate struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			ProductErrors []FieldError `json:"productErrors"`
		} `json:"productCreate"`
	}
	vars := map[string]any{"input": input}
	if err := c.execute(ctx, "productCreate", productCreateMutation, vars, &data); err != nil {
		return "", err
	}
	if err := checkFieldErrors("productCreate", data.ProductCreate.ProductErrors); err != nil {
		return "", err
	}
	if data.ProductCreate.Product == nil {
		return "", &TransportError{Op: "productCreate", Err: fmt.Errorf("no product in response")}
	}

	return data.ProductCreate.Product.ID, nil
}

// UpdateProduct returns the name of the updated product.
func (c *saleorClient) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (string, error) {
	var data struct {
		ProductUpdate struct {
			Product *struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"product"`
			ProductErrors []FieldError `json:"productErrors"`
		} `json:"productUpdate"`
	}
	vars := map[string]any{"id": id, "input": input}
	if err := c.execute(ctx, "productUpdate", productUpdateMutation, vars, &data); err != nil {
		return "", err
	}
	if err := checkFieldErrors("productUpdate", data.ProductUpdate.ProductErrors); err != nil {
		return "", err
	}
	if data.ProductUpdate.Product == nil {
		return "", &TransportError{Op: "productUpdate", Err: fmt.Errorf("no product in response")}
	}

	return data.ProductUpdate.Product.Name, nil
}

func (c *saleorClient) FetchAllProductIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)

	err := paginate(ctx, "productIds", func(after string) (pageInfo, error) {
		var data struct {
			Products struct {
				PageInfo pageInfo `json:"pageInfo"`
				Edges    []struct {
					Node struct {
						ID string `json:"id"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		}
		vars := map[string]any{"first": pageSize, "after": cursor(after)}
		if err := c.execute(ctx, "productIds", productIDsQuery, vars, &data); err != nil {
			return pageInfo{}, err
		}
		for _, edge := range data.Products.Edges {
			ids = append(ids, edge.Node.ID)
		}
		return data.Products.PageInfo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return ids, nil
}

func (c *saleorClient) BulkDeleteProducts(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var data struct {
		ProductBulkDelete struct {
			Count         int          `json:"count"`
			ProductErrors []FieldError `json:"productErrors"`
		} `json:"productBulkDelete"`
	}
	vars := map[string]any{"ids": ids}
	if err := c.execute(ctx, "productBulkDelete", productBulkDeleteMutation, vars, &data); err != nil {
		return 0, err
	}
	if err := checkFieldErrors("productBulkDelete", data.ProductBulkDelete.ProductErrors); err != nil {
		return 0, err
	}

	return data.ProductBulkDelete.Count, nil
}

func (c *saleorClient) CreateProductType(ctx context.Context, name string) (string, error) {
	var data struct {
		ProductTypeCreate struct {
			ProductType *struct {
				ID string `json:"id"`
			} `json:"productType"`
			ProductErrors []FieldError `json:"productErrors"`
		} `json:"productTypeCreate"`
	}
	vars := map[string]any{
		"input": map[string]any{
			"name":               name,
			"hasVariants":        false,
			"isShippingRequired": true,
		},
	}
	if err := c.execute(ctx, "productTypeCreate", productTypeCreateMutation, vars, &data); err != nil {
		return "", err
	}
	if err := checkFieldErrors("productTypeCreate", data.ProductTypeCreate.ProductErrors); err != nil {
		return "", err
	}
	if data.ProductTypeCreate.ProductType == nil {
		return "", &TransportError{Op: "productTypeCreate", Err: fmt.Errorf("no product type in response")}
	}

	return data.ProductTypeCreate.ProductType.ID, nil
}
