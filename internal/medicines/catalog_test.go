package medicines

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const sampleCSV = `med_name,generic_name,disease_name,final_price,drug_manufacturer,prescription_required,img_urls,drug_content,drug_varient
Paracetamol 500mg,Acetaminophen,Fever,"₹30.50",* Mkt: Cipla Ltd,Rx not required,"https://img.example/p1.jpg,https://img.example/p2.jpg",Pain reliever and fever reducer,Tablet
Azithromycin 250mg,Azithromycin,Bacterial Infection,"₹1,249.00",Pfizer,Rx required,https://img.example/a1.jpg,Macrolide antibiotic,Tablet
Cetirizine 10mg,Cetirizine,Allergy,,* Mkt:,Rx not required,,,Tablet
`

func loadSample(t *testing.T) *Catalog {
	t.Helper()
	c, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return c
}

func TestRead(t *testing.T) {
	c := loadSample(t)
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
}

func TestSearchMatchesNameGenericAndDisease(t *testing.T) {
	c := loadSample(t)

	cases := []struct {
		query string
		want  string
	}{
		{"PARACETAMOL", "Paracetamol 500mg"},
		{"azithro", "Azithromycin 250mg"},
		{"allergy", "Cetirizine 10mg"},
	}
	for _, tc := range cases {
		got := c.Search(tc.query, 10)
		if len(got) != 1 || got[0].Name != tc.want {
			t.Errorf("Search(%q) = %+v, want one result %q", tc.query, got, tc.want)
		}
	}
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	c := loadSample(t)
	if got := c.Search("   ", 10); len(got) != 0 {
		t.Errorf("Search(blank) = %+v, want empty", got)
	}
}

func TestSearchHonorsLimit(t *testing.T) {
	c := loadSample(t)
	if got := c.Search("tablet", 10); len(got) != 0 {
		// variant column is not searched
		t.Errorf("Search(tablet) = %+v, want empty", got)
	}
	if got := c.Search("in", 1); len(got) != 1 {
		t.Errorf("Search(in, limit 1) returned %d results", len(got))
	}
}

func TestPriceParsing(t *testing.T) {
	c := loadSample(t)

	m, _ := c.ByID(0)
	if m.Price != 30.50 {
		t.Errorf("rupee price = %v, want 30.50", m.Price)
	}
	m, _ = c.ByID(1)
	if m.Price != 1249.00 {
		t.Errorf("comma price = %v, want 1249.00", m.Price)
	}
	m, _ = c.ByID(2)
	if m.Price != defaultPrice {
		t.Errorf("missing price = %v, want default %v", m.Price, defaultPrice)
	}
}

func TestManufacturerCleaning(t *testing.T) {
	c := loadSample(t)

	m, _ := c.ByID(0)
	if m.Manufacturer != "Cipla Ltd" {
		t.Errorf("Manufacturer = %q, want Cipla Ltd", m.Manufacturer)
	}
	m, _ = c.ByID(2)
	if m.Manufacturer != "Unknown" {
		t.Errorf("empty manufacturer = %q, want Unknown", m.Manufacturer)
	}
}

func TestPrescriptionFlagAndImage(t *testing.T) {
	c := loadSample(t)

	m, _ := c.ByID(0)
	if m.PrescriptionRequired {
		t.Error("Paracetamol should not require a prescription")
	}
	if m.ImageURL != "https://img.example/p1.jpg" {
		t.Errorf("ImageURL = %q, want first url only", m.ImageURL)
	}
	m, _ = c.ByID(1)
	if !m.PrescriptionRequired {
		t.Error("Azithromycin should require a prescription")
	}
}

func TestByIDRange(t *testing.T) {
	c := loadSample(t)

	if _, ok := c.ByID(-1); ok {
		t.Error("ByID(-1) should not be found")
	}
	if _, ok := c.ByID(3); ok {
		t.Error("ByID(3) should not be found")
	}
	m, ok := c.ByID(1)
	if !ok || m.ID != 1 {
		t.Errorf("ByID(1) = %+v, ok=%v", m, ok)
	}
	if m.Description != "Macrolide antibiotic" {
		t.Errorf("Description = %q", m.Description)
	}
}

func TestByIDTruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 600)
	data := "med_name,drug_content\nTest Med," + long + "\n"
	c, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	m, _ := c.ByID(0)
	if len(m.Description) != 503 || !strings.HasSuffix(m.Description, "...") {
		t.Errorf("Description length = %d, want 500 chars plus ellipsis", len(m.Description))
	}
}

func TestByIDTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("₹", 600)
	data := "med_name,drug_content\nTest Med,\"" + long + "\"\n"
	c, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	m, _ := c.ByID(0)
	if !utf8.ValidString(m.Description) {
		t.Error("Description is not valid UTF-8")
	}
	if got := utf8.RuneCountInString(m.Description); got != 503 {
		t.Errorf("Description runes = %d, want 500 plus ellipsis", got)
	}
}

func TestPage(t *testing.T) {
	c := loadSample(t)

	got, total := c.Page(1, 2, "")
	if total != 3 || len(got) != 2 {
		t.Fatalf("Page(1,2) = %d results, total %d", len(got), total)
	}
	got, total = c.Page(2, 2, "")
	if total != 3 || len(got) != 1 {
		t.Fatalf("Page(2,2) = %d results, total %d", len(got), total)
	}
	got, total = c.Page(5, 2, "")
	if total != 3 || len(got) != 0 {
		t.Fatalf("Page(5,2) = %d results, total %d", len(got), total)
	}
	got, total = c.Page(1, 20, "cetirizine")
	if total != 1 || len(got) != 1 || got[0].Name != "Cetirizine 10mg" {
		t.Fatalf("filtered page = %+v, total %d", got, total)
	}
}

func TestDefaultUsesText(t *testing.T) {
	data := "med_name,disease_name\nMystery Med,\n"
	c, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	m, _ := c.ByID(0)
	if m.Uses != "General use medicine" {
		t.Errorf("Uses = %q", m.Uses)
	}
}
