package sample

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

var (
	firstNames = []string{"John", "Sarah", "Mike", "Emily", "Ana", "Ravi", "Lena", "Tom", "Yuki", "Omar"}
	lastNames  = []string{"Smith", "Johnson", "Chen", "Davis", "Garcia", "Patel", "Müller", "Brown", "Sato", "Haddad"}
	regions    = []string{"North America", "Europe", "Asia Pacific", "Latin America", "Middle East"}
	categories = []string{"Electronics", "Books", "Home", "Garden", "Toys", "Sports"}
	dateStart  = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
)

const dateSpanDays = 730

// Generator produces synthetic records for a catalog.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator. A zero seed uses the current time.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns count records with a value for every catalog field.
func (g *Generator) Generate(cat *catalog.Catalog, count int) []model.Record {
	if count <= 0 {
		return nil
	}
	fields := cat.List()
	result := make([]model.Record, 0, count)
	for i := 0; i < count; i++ {
		first := firstNames[g.rnd.Intn(len(firstNames))]
		last := lastNames[g.rnd.Intn(len(lastNames))]
		rec := make(model.Record, len(fields))
		for _, f := range fields {
			rec[f.ID] = g.value(f, i, first, last)
		}
		result = append(result, rec)
	}
	return result
}

func (g *Generator) value(f model.Field, i int, first, last string) any {
	switch f.Type {
	case model.TypeNumber:
		return g.number(f.ID)
	case model.TypeDate:
		return dateStart.AddDate(0, 0, g.rnd.Intn(dateSpanDays)).Format(model.DateLayout)
	}
	id := strings.ToLower(f.ID)
	switch {
	case strings.Contains(id, "email"):
		return fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last))
	case strings.Contains(id, "name"):
		return first + " " + last
	case strings.Contains(id, "region"):
		return regions[g.rnd.Intn(len(regions))]
	case strings.Contains(id, "category"):
		return categories[g.rnd.Intn(len(categories))]
	}
	return fmt.Sprintf("%s %d", f.Name, i+1)
}

func (g *Generator) number(id string) int {
	id = strings.ToLower(id)
	switch {
	case strings.Contains(id, "count"):
		return 1 + g.rnd.Intn(60)
	case strings.Contains(id, "discount"):
		return g.rnd.Intn(40)
	}
	return 1000 + g.rnd.Intn(49000)
}
