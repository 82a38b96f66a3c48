package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

//columns is the fixed catalog schema. name, price_clink, and available are
//required; the rest tolerate an empty value
var columns = []string{
	"name", "category", "color", "color_id", "num_holes",
	"price_clink", "price_home_depot", "available",
	"length_in", "width_in", "height_in",
}

//Store is a read-only snapshot of Clink's catalog, immutable after Load
type Store struct {
	records []*Record
}

//Load reads the catalog CSV at path. Any malformed required field, negative
//price or availability, or duplicate name is an error: the process must not
//serve traffic with a malformed catalog
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Description: fmt.Sprintf("Could not open catalog %q", path), Type: ErrorTypeServer, Err: err}
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, &Error{Description: fmt.Sprintf("Could not load catalog %q", path), Type: ErrorTypeServer, Err: err}
	}
	return s, nil
}

//Read parses catalog CSV data from r
func Read(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog has no header row")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("catalog missing column %q", col)
		}
	}

	seen := make(map[string]struct{}, len(rows)-1)
	records := make([]*Record, 0, len(rows)-1)

	for n, row := range rows[1:] {
		field := func(col string) string {
			return strings.TrimSpace(row[idx[col]])
		}

		rec := &Record{
			Name:     field("name"),
			Category: field("category"),
			Color:    field("color"),
			ColorID:  field("color_id"),
			NumHoles: field("num_holes"),
		}

		if rec.Name == "" {
			return nil, fmt.Errorf("row %d: name is required", n+2)
		}

		//duplicate names are a data-integrity defect, rejected at load time
		key := strings.ToLower(rec.Name)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("row %d: duplicate name %q", n+2, rec.Name)
		}
		seen[key] = struct{}{}

		if rec.PriceClink, err = decimal.NewFromString(field("price_clink")); err != nil {
			return nil, fmt.Errorf("row %d (%s): could not parse price_clink: %w", n+2, rec.Name, err)
		}
		if rec.PriceClink.IsNegative() {
			return nil, fmt.Errorf("row %d (%s): price_clink is negative", n+2, rec.Name)
		}

		if rec.PriceHomeDepot, err = optionalDecimal(field("price_home_depot")); err != nil {
			return nil, fmt.Errorf("row %d (%s): could not parse price_home_depot: %w", n+2, rec.Name, err)
		}
		if rec.PriceHomeDepot != nil && rec.PriceHomeDepot.IsNegative() {
			return nil, fmt.Errorf("row %d (%s): price_home_depot is negative", n+2, rec.Name)
		}

		if rec.Available, err = strconv.Atoi(field("available")); err != nil {
			return nil, fmt.Errorf("row %d (%s): could not parse available: %w", n+2, rec.Name, err)
		}
		if rec.Available < 0 {
			return nil, fmt.Errorf("row %d (%s): available is negative", n+2, rec.Name)
		}

		if rec.LengthIn, err = optionalFloat(field("length_in")); err != nil {
			return nil, fmt.Errorf("row %d (%s): could not parse length_in: %w", n+2, rec.Name, err)
		}
		if rec.WidthIn, err = optionalFloat(field("width_in")); err != nil {
			return nil, fmt.Errorf("row %d (%s): could not parse width_in: %w", n+2, rec.Name, err)
		}
		if rec.HeightIn, err = optionalFloat(field("height_in")); err != nil {
			return nil, fmt.Errorf("row %d (%s): could not parse height_in: %w", n+2, rec.Name, err)
		}

		records = append(records, rec)
	}

	return &Store{records: records}, nil
}

//optionalDecimal parses an optional money field. An empty value is absent,
//represented as nil rather than zero: a zero price is different from an
//unknown price
func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

//optionalFloat parses an optional dimension field, nil when empty
func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

//Records returns the catalog in load order. Callers must not modify the
//returned records
func (s *Store) Records() []*Record {
	return s.records
}

//FindByName returns the record whose name matches name case-insensitively,
//or nil if there is none
func (s *Store) FindByName(name string) *Record {
	for _, rec := range s.records {
		if strings.EqualFold(rec.Name, name) {
			return rec
		}
	}
	return nil
}
