package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/loader/internal/client"
	"catalog/loader/internal/domain"
	"catalog/loader/internal/extract"
	"catalog/loader/internal/observability"
	"catalog/loader/internal/resolver"

	log "github.com/sirupsen/logrus"
)

// ErrSKUMismatch means a create was rejected as a duplicate SKU but no product
// carrying that SKU could be found afterwards.
var ErrSKUMismatch = errors.New("duplicate SKU reported but no product carries it")

// Product policy applied to every imported product.
const (
	chargeTaxes    = true
	isPublished    = true
	trackInventory = false
)

type RowExtractor interface {
	Extract(row domain.Row) (*domain.ProductRecord, error)
}

type Service struct {
	client      client.CatalogClient
	extractor   RowExtractor
	productType string
}

func NewService(client client.CatalogClient, extractor RowExtractor, productType string) *Service {
	return &Service{
		client:      client,
		extractor:   extractor,
		productType: productType,
	}
}

// Import reconciles up to maxRows rows (all rows when maxRows <= 0) against the
// remote catalog. Row failures are recorded in the report; a transport failure
// stops the run and is returned together with the partial report.
func (s *Service) Import(ctx context.Context, rows []domain.Row, maxRows int) (*domain.ImportReport, error) {
	report := domain.NewImportReport()
	defer func() {
		report.FinishedAt = time.Now().UTC()
	}()

	productTypeID, err := s.ensureProductType(ctx)
	if err != nil {
		return report, err
	}
	report.ProductTypeID = productTypeID

	forest, err := s.client.FetchCategoryForest(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch category forest: %w", err)
	}

	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	categories := resolver.New(s.client)
	log.Infof("🔄 Importing %d rows", len(rows))

	for _, row := range rows {
		outcome, err := s.importRow(ctx, row, forest, categories, productTypeID)
		report.Add(outcome)
		report.CategoriesCreated = categories.Created()
		observability.RowsProcessed.WithLabelValues(outcome.Outcome.String()).Inc()

		if err != nil {
			log.Errorf("❌ Aborting import at row %d: %v", row.Number, err)
			return report, err
		}
	}

	log.Infof("✅ Import finished: %d created, %d updated, %d skipped, %d failed, %d categories created",
		report.Count(domain.OutcomeCreated), report.Count(domain.OutcomeUpdated),
		report.Count(domain.OutcomeSkipped), report.Count(domain.OutcomeFailed),
		report.CategoriesCreated)

	return report, nil
}

// importRow processes one row. The returned error is only set when the run must stop.
func (s *Service) importRow(
	ctx context.Context,
	row domain.Row,
	forest *domain.CategoryForest,
	categories *resolver.Resolver,
	productTypeID string,
) (domain.RowOutcome, error) {
	outcome := domain.RowOutcome{Row: row.Number}

	record, err := s.extractor.Extract(row)
	if err != nil {
		if extract.IsSkip(err) {
			log.Infof("⏭️ %v", err)
			outcome.Outcome = domain.OutcomeSkipped
			outcome.Reason = err.Error()
			return outcome, nil
		}
		return failed(outcome, err), nil
	}
	outcome.SKU = record.SKU
	outcome.Name = record.Name

	categoryID, err := categories.Resolve(ctx, record.CategoryPath, forest)
	if err != nil {
		return failed(outcome, err), fatal(err)
	}
	outcome.CategoryID = categoryID
	log.Debugf("Row %d: category %s resolved to %s", row.Number, record.CategoryPath, categoryID)

	input := buildProductInput(record, categoryID)
	result, productID, err := s.upsert(ctx, input, productTypeID)
	if err != nil {
		outcome.ProductID = productID
		return failed(outcome, err), fatal(err)
	}

	outcome.Outcome = result
	outcome.ProductID = productID
	log.Infof("✅ Product %q (SKU %s) %s", record.Name, record.SKU, result)
	return outcome, nil
}

type createStatus int

const (
	createCreated createStatus = iota
	createConflict
	createFailed
)

type createResult struct {
	status    createStatus
	productID string
	err       error
}

// tryCreate attempts the optimistic create. Only a duplicate-SKU rejection is
// reported as a conflict; every other error, transport ones included, is a failure.
func (s *Service) tryCreate(ctx context.Context, input domain.ProductInput, productTypeID string) createResult {
	id, err := s.client.CreateProduct(ctx, domain.ProductCreateInput{
		ProductInput: input,
		ProductType:  productTypeID,
	})
	switch {
	case err == nil:
		return createResult{status: createCreated, productID: id}
	case client.IsDuplicateSKU(err):
		return createResult{status: createConflict, err: err}
	default:
		return createResult{status: createFailed, err: err}
	}
}

// upsert creates the product, falling back to an update of the product that
// already carries the SKU.
func (s *Service) upsert(ctx context.Context, input domain.ProductInput, productTypeID string) (domain.Outcome, string, error) {
	result := s.tryCreate(ctx, input, productTypeID)
	switch result.status {
	case createCreated:
		return domain.OutcomeCreated, result.productID, nil
	case createFailed:
		return domain.OutcomeFailed, "", result.err
	}

	log.Infof("🔄 Product with SKU %s already exists, updating it", input.SKU)
	productID, err := s.client.FetchProductBySKU(ctx, input.SKU)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return domain.OutcomeFailed, "", fmt.Errorf("SKU %s: %w", input.SKU, ErrSKUMismatch)
		}
		return domain.OutcomeFailed, "", err
	}

	if _, err := s.client.UpdateProduct(ctx, productID, input); err != nil {
		return domain.OutcomeFailed, productID, err
	}

	return domain.OutcomeUpdated, productID, nil
}

// ensureProductType finds the configured product type or creates it.
func (s *Service) ensureProductType(ctx context.Context) (string, error) {
	id, err := s.client.FetchProductTypeByName(ctx, s.productType)
	if err == nil {
		log.Infof("📦 Using product type %q (%s)", s.productType, id)
		return id, nil
	}
	if !errors.Is(err, client.ErrNotFound) {
		return "", fmt.Errorf("failed to look up product type %q: %w", s.productType, err)
	}

	id, err = s.client.CreateProductType(ctx, s.productType)
	if err != nil {
		return "", fmt.Errorf("failed to create product type %q: %w", s.productType, err)
	}
	log.Infof("📦 Created product type %q (%s)", s.productType, id)
	return id, nil
}

// buildProductInput maps a record onto the remote payload. The image URL is
// intentionally not sent.
func buildProductInput(record *domain.ProductRecord, categoryID string) domain.ProductInput {
	return domain.ProductInput{
		Name:           record.Name,
		SKU:            record.SKU,
		Description:    record.Description,
		Category:       categoryID,
		ChargeTaxes:    chargeTaxes,
		IsPublished:    isPublished,
		TrackInventory: trackInventory,
		BasePrice:      record.Price,
		Weight:         record.Weight,
		SEO: domain.SEO{
			Title:       record.SEOTitle,
			Description: record.SEODescription,
		},
	}
}

func failed(outcome domain.RowOutcome, err error) domain.RowOutcome {
	log.Errorf("❌ Row %d (SKU %s) failed: %v", outcome.Row, outcome.SKU, err)
	outcome.Outcome = domain.OutcomeFailed
	outcome.Reason = err.Error()
	outcome.Err = err
	return outcome
}

// fatal keeps only the errors that must abort the run.
func fatal(err error) error {
	if client.IsTransport(err) {
		return err
	}
	return nil
}
