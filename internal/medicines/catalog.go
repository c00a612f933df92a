package medicines

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/healbridge/telehealth-api/internal/models"
)

const defaultPrice = 50.0

// row holds the raw dataset columns we care about.
type row struct {
	name         string
	genericName  string
	disease      string
	price        float64
	manufacturer string
	rxRequired   bool
	imageURL     string
	content      string
	variant      string
}

// Catalog is the in-memory medicine dataset, indexed by row position.
type Catalog struct {
	rows []row
}

// Load reads the medicine CSV. Unknown columns are ignored; rows are indexed
// in file order so ids stay stable across restarts of the same dataset.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open medicine csv: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV data with a header line into a Catalog.
func Read(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read medicine csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	c := &Catalog{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read medicine csv: %w", err)
		}
		c.rows = append(c.rows, row{
			name:         field(rec, "med_name"),
			genericName:  field(rec, "generic_name"),
			disease:      field(rec, "disease_name"),
			price:        parsePrice(field(rec, "final_price")),
			manufacturer: cleanManufacturer(field(rec, "drug_manufacturer")),
			rxRequired:   field(rec, "prescription_required") == "Rx required",
			imageURL:     firstImage(field(rec, "img_urls")),
			content:      field(rec, "drug_content"),
			variant:      field(rec, "drug_varient"),
		})
	}
	return c, nil
}

// Len reports the number of medicines loaded.
func (c *Catalog) Len() int { return len(c.rows) }

// Search matches the query case-insensitively against medicine name, generic
// name and disease, returning at most limit results.
func (c *Catalog) Search(query string, limit int) []models.Medicine {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []models.Medicine{}
	if query == "" {
		return out
	}
	if limit <= 0 {
		limit = 10
	}
	for i, r := range c.rows {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(r.name), query) ||
			strings.Contains(strings.ToLower(r.genericName), query) ||
			strings.Contains(strings.ToLower(r.disease), query) {
			out = append(out, c.medicine(i, false))
		}
	}
	return out
}

// ByID returns the medicine at the given row index, with detail fields.
func (c *Catalog) ByID(id int) (models.Medicine, bool) {
	if id < 0 || id >= len(c.rows) {
		return models.Medicine{}, false
	}
	return c.medicine(id, true), true
}

// Page returns one page of the catalog, optionally filtered, plus the total
// match count.
func (c *Catalog) Page(page, perPage int, search string) ([]models.Medicine, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	search = strings.ToLower(strings.TrimSpace(search))

	matches := make([]int, 0, len(c.rows))
	for i, r := range c.rows {
		if search == "" ||
			strings.Contains(strings.ToLower(r.name), search) ||
			strings.Contains(strings.ToLower(r.genericName), search) {
			matches = append(matches, i)
		}
	}

	start := (page - 1) * perPage
	if start >= len(matches) {
		return []models.Medicine{}, len(matches)
	}
	end := start + perPage
	if end > len(matches) {
		end = len(matches)
	}
	out := make([]models.Medicine, 0, end-start)
	for _, i := range matches[start:end] {
		out = append(out, c.medicine(i, false))
	}
	return out, len(matches)
}

func (c *Catalog) medicine(id int, detailed bool) models.Medicine {
	r := c.rows[id]
	uses := r.disease
	if uses == "" {
		uses = "General use medicine"
	}
	m := models.Medicine{
		ID:                   id,
		Name:                 r.name,
		GenericName:          r.genericName,
		Disease:              r.disease,
		Composition:          r.genericName,
		Uses:                 uses,
		SideEffects:          "Consult doctor for side effects information",
		Manufacturer:         r.manufacturer,
		PrescriptionRequired: r.rxRequired,
		Available:            true,
		Price:                r.price,
		ImageURL:             r.imageURL,
	}
	if detailed {
		m.Description = truncate(r.content, 500)
		m.DrugVariant = r.variant
	}
	return m
}

// parsePrice handles dataset values like "₹335.68" or "1,249.00".
func parsePrice(s string) float64 {
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || p <= 0 {
		return defaultPrice
	}
	return p
}

// cleanManufacturer strips the dataset's "* Mkt:" prefix.
func cleanManufacturer(s string) string {
	s = strings.ReplaceAll(s, "* Mkt:", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown"
	}
	return s
}

func firstImage(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		return s[:i]
	}
	return s
}

// truncate cuts on rune boundaries; dataset text carries multi-byte
// characters like the rupee sign.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
