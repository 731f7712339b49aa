package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"docex/internal/config"
)

// Sheet names in the reference workbook (read-only).
const (
	sheetOrders       = "SalesOrderHeader"
	sheetOrderDetails = "SalesOrderDetail"
	sheetProducts     = "Product"
	sheetCustomers    = "Customers"
)

// Sheet names in the extracted workbook (read/write).
const (
	sheetExtractedOrders  = "ExtractedOrders"
	sheetExtractedDetails = "ExtractedOrderDetails"
)

var extractedOrderColumns = []string{
	"SalesOrderID", "SalesOrderNumber", "OrderDate", "CustomerID",
	"SubTotal", "TaxAmt", "Freight", "TotalDue", "Status",
	"InvoiceNumber", "CompanyName", "ExtractedAt", "Confidence", "Provider",
}

var extractedDetailColumns = []string{
	"SalesOrderDetailID", "SalesOrderID", "ProductID", "ProductNumber",
	"ProductName", "OrderQty", "UnitPrice", "LineTotal",
}

// Store is a workbook-backed order database. The reference workbook holds
// catalog data and historical orders and is never written; newly extracted
// orders go to the extracted workbook. Sheets are cached with a TTL since
// every read otherwise reopens the file.
type Store struct {
	referencePath string
	extractedPath string
	cacheTTL      time.Duration

	mu    sync.RWMutex
	cache map[string]cachedSheet
}

type cachedSheet struct {
	rows     [][]string
	loadedAt time.Time
}

// NewStore opens the workbook store, creating the extracted workbook with
// empty sheets when it does not exist yet.
func NewStore(cfg *config.StoreConfig) (*Store, error) {
	s := &Store{
		referencePath: cfg.ReferenceFile,
		extractedPath: cfg.ExtractedFile,
		cacheTTL:      cfg.CacheTTL,
		cache:         make(map[string]cachedSheet),
	}
	if s.cacheTTL == 0 {
		s.cacheTTL = 60 * time.Second
	}
	if err := s.initExtractedFile(); err != nil {
		return nil, fmt.Errorf("initializing extracted workbook: %w", err)
	}
	return s, nil
}

func (s *Store) initExtractedFile() error {
	if _, err := os.Stat(s.extractedPath); err == nil {
		return nil
	}

	if dir := filepath.Dir(s.extractedPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetExtractedOrders); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetExtractedDetails); err != nil {
		return err
	}

	orderHeader := make([]interface{}, len(extractedOrderColumns))
	for i, c := range extractedOrderColumns {
		orderHeader[i] = c
	}
	if err := f.SetSheetRow(sheetExtractedOrders, "A1", &orderHeader); err != nil {
		return err
	}

	detailHeader := make([]interface{}, len(extractedDetailColumns))
	for i, c := range extractedDetailColumns {
		detailHeader[i] = c
	}
	if err := f.SetSheetRow(sheetExtractedDetails, "A1", &detailHeader); err != nil {
		return err
	}

	if err := f.SaveAs(s.extractedPath); err != nil {
		return fmt.Errorf("saving new extracted workbook: %w", err)
	}

	log.Info().Str("path", s.extractedPath).Msg("created extracted orders workbook")
	return nil
}

// referenceSheet loads a sheet from the reference workbook. A missing
// reference file yields empty rows rather than an error: the demo works
// with extracted data alone.
func (s *Store) referenceSheet(sheet string) ([][]string, error) {
	if _, err := os.Stat(s.referencePath); err != nil {
		return nil, nil
	}
	return s.loadSheet(s.referencePath, sheet, false)
}

// extractedSheet loads a sheet from the extracted workbook.
func (s *Store) extractedSheet(sheet string, forceRefresh bool) ([][]string, error) {
	return s.loadSheet(s.extractedPath, sheet, forceRefresh)
}

func (s *Store) loadSheet(path, sheet string, forceRefresh bool) ([][]string, error) {
	key := path + "::" + sheet

	if !forceRefresh {
		s.mu.RLock()
		cached, ok := s.cache[key]
		s.mu.RUnlock()
		if ok && time.Since(cached.loadedAt) < s.cacheTTL {
			return cached.rows, nil
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	s.mu.Lock()
	s.cache[key] = cachedSheet{rows: rows, loadedAt: time.Now()}
	s.mu.Unlock()

	log.Debug().Str("sheet", sheet).Int("rows", len(rows)).Msg("loaded worksheet")
	return rows, nil
}

// invalidate drops cached rows for a sheet of the extracted workbook.
func (s *Store) invalidate(sheet string) {
	s.mu.Lock()
	delete(s.cache, s.extractedPath+"::"+sheet)
	s.mu.Unlock()
}

// appendRow appends one row of values to a sheet of the extracted workbook.
// Callers must hold the write path exclusively (see writeMu in repo.go).
func (s *Store) appendRow(sheet string, values []interface{}) error {
	f, err := excelize.OpenFile(s.extractedPath)
	if err != nil {
		return fmt.Errorf("opening extracted workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("saving extracted workbook: %w", err)
	}

	s.invalidate(sheet)
	return nil
}

// columnIndex builds a header-name → column-index map from a header row.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

// cellValue returns the named column of a row, or "" when the column is
// absent or the row is ragged (trailing empty cells are dropped by excelize).
func cellValue(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
