package bookings

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// Header aliases, lower-cased. The export has been produced both with and
// without Vietnamese diacritics.
var columnAliases = map[string][]string{
	"id":        {"số đặt phòng", "so dat phong", "booking id", "booking_id"},
	"guest":     {"tên người đặt", "ten nguoi dat", "guest name", "guest_name"},
	"check_in":  {"check-in date", "check_in", "check-in"},
	"check_out": {"check-out date", "check_out", "check-out"},
	"amount":    {"tổng thanh toán", "tong thanh toan", "total", "amount"},
	"collector": {"người thu tiền", "nguoi thu tien", "collector"},
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "02/01/2006", "1/2/06", "01-02-06"}

// retryInterval is how long a failed workbook read is remembered before
// the file is opened again.
const retryInterval = time.Minute

// SheetLookup reads bookings from an .xlsx export. The file is read once
// on first use and cached; call Reload to pick up a new export.
//
// When the workbook cannot be read, the failing lookup returns the error
// and lookups during the following retryInterval report ErrNotFound
// without touching the file.
type SheetLookup struct {
	path  string
	sheet string
	now   func() time.Time

	mu       sync.RWMutex
	loaded   bool
	rows     []Booking
	failedAt time.Time
}

// NewSheetLookup creates a lookup over the given workbook. An empty sheet
// name selects the first sheet.
func NewSheetLookup(path, sheet string) *SheetLookup {
	return &SheetLookup{path: path, sheet: sheet, now: time.Now}
}

// Reload re-reads the workbook.
func (s *SheetLookup) Reload() error {
	rows, err := readSheet(s.path, s.sheet)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rows = rows
	s.loaded = true
	s.failedAt = time.Time{}
	s.mu.Unlock()
	return nil
}

func (s *SheetLookup) LatestByName(ctx context.Context, name string) (*Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, ErrNotFound
	}
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *Booking
	for i := range s.rows {
		b := &s.rows[i]
		if !strings.Contains(strings.ToLower(b.GuestName), needle) {
			continue
		}
		if best == nil || b.CheckIn.After(best.CheckIn) {
			best = b
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	found := *best
	return &found, nil
}

func (s *SheetLookup) ensureLoaded() error {
	s.mu.RLock()
	loaded, failedAt := s.loaded, s.failedAt
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	if !failedAt.IsZero() && s.now().Sub(failedAt) < retryInterval {
		return ErrNotFound
	}

	if err := s.Reload(); err != nil {
		s.mu.Lock()
		s.failedAt = s.now()
		s.mu.Unlock()
		return err
	}
	return nil
}

func readSheet(path, sheet string) ([]Booking, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening booking workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); sheet == "" || err != nil || idx < 0 {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := mapColumns(rows[0])
	if _, ok := cols["guest"]; !ok {
		return nil, fmt.Errorf("sheet %q has no guest name column", sheet)
	}

	var bookings []Booking
	for _, row := range rows[1:] {
		b := Booking{
			ID:        cell(row, cols, "id"),
			GuestName: cell(row, cols, "guest"),
			CheckIn:   parseDate(cell(row, cols, "check_in")),
			CheckOut:  parseDate(cell(row, cols, "check_out")),
			Amount:    parseAmount(cell(row, cols, "amount")),
			Collector: cell(row, cols, "collector"),
		}
		// Rows without an id or a guest are partial entries in the export.
		if b.ID == "" || b.GuestName == "" {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func mapColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range columnAliases {
			if _, seen := cols[field]; seen {
				continue
			}
			for _, a := range aliases {
				if h == a {
					cols[field] = i
				}
			}
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseAmount keeps digits and the decimal point, so "1,200,000 VND" is 1200000.
func parseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
