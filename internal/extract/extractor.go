package extract

import (
	"errors"
	"fmt"
	"strings"

	"catalog/loader/internal/config"
	"catalog/loader/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// ErrNegativeAmount rejects prices and weights the remote store would refuse anyway.
var ErrNegativeAmount = errors.New("amount must not be negative")

// SkipError signals a row that is not importable. It is not a failure.
type SkipError struct {
	Row    int
	Reason string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("row %d skipped: %s", e.Row, e.Reason)
}

// IsSkip reports whether err is a skip signal.
func IsSkip(err error) bool {
	var skip *SkipError
	return errors.As(err, &skip)
}

type Extractor struct {
	columns            config.ColumnsConfig
	deletionMarker     string
	defaultDescription string
	weightUnit         string
	seoTitleMax        int
}

func NewExtractor(cfg config.ImportConfig) *Extractor {
	return &Extractor{
		columns:            cfg.Columns,
		deletionMarker:     cfg.DeletionMarker,
		defaultDescription: cfg.DefaultDescription,
		weightUnit:         cfg.WeightUnit,
		seoTitleMax:        cfg.SEOTitleMax,
	}
}

// Extract turns one spreadsheet row into a product record.
// It returns a *SkipError for incomplete rows and rows marked for deletion.
func (e *Extractor) Extract(row domain.Row) (*domain.ProductRecord, error) {
	cell := func(index int) string {
		return strings.TrimSpace(row.Cell(index))
	}
	skip := func(reason string) error {
		return &SkipError{Row: row.Number, Reason: reason}
	}

	name := cell(e.columns.Name)
	if name == "" {
		return nil, skip("missing name")
	}
	if e.deletionMarker != "" && strings.Contains(name, e.deletionMarker) {
		return nil, skip("marked for deletion")
	}

	sku := cell(e.columns.SKU)
	if sku == "" {
		return nil, skip("missing SKU")
	}

	rawPrice := cell(e.columns.Price)
	if rawPrice == "" {
		return nil, skip("missing price")
	}

	path := domain.ParseCategoryPath(cell(e.columns.Category))
	if len(path) == 0 {
		return nil, skip("missing category")
	}

	price, err := parseAmount(rawPrice)
	if err != nil {
		return nil, fmt.Errorf("row %d: invalid price %q: %w", row.Number, rawPrice, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("row %d: invalid price %q: %w", row.Number, rawPrice, ErrNegativeAmount)
	}

	var weight *domain.Weight
	if rawWeight := cell(e.columns.Weight); rawWeight != "" {
		value, err := parseAmount(rawWeight)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid weight %q: %w", row.Number, rawWeight, err)
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("row %d: invalid weight %q: %w", row.Number, rawWeight, ErrNegativeAmount)
		}
		weight = &domain.Weight{Unit: e.weightUnit, Value: value}
	}

	description := plainText(cell(e.columns.Description))
	if description == "" {
		description = e.defaultDescription
	}

	return &domain.ProductRecord{
		Row:            row.Number,
		Name:           name,
		SKU:            sku,
		Description:    description,
		Price:          price,
		Weight:         weight,
		CategoryPath:   path,
		ImageURL:       cell(e.columns.Image),
		SEOTitle:       strings.TrimSpace(truncate(row.Cell(e.columns.SEOTitle), e.seoTitleMax)),
		SEODescription: cell(e.columns.SEODescription),
	}, nil
}

// parseAmount accepts plain numbers as well as "$1,299.00"-style cells.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', ',', ' ':
			return -1
		}
		return r
	}, raw)
	return decimal.NewFromString(cleaned)
}

// plainText strips HTML markup from description cells exported from a web store.
func plainText(raw string) string {
	if !strings.Contains(raw, "<") {
		return raw
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// truncate keeps the first max characters of s.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
