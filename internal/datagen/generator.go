package datagen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSeed keeps runs reproducible when no seed is configured.
const DefaultSeed int64 = 12345

// Generator produces fake field values from a single seeded source.
// It is not safe for concurrent use.
type Generator struct {
	rand *rand.Rand
	now  time.Time
}

// New returns a generator seeded with seed whose past dates are relative to now.
func New(seed int64, now time.Time) *Generator {
	return &Generator{
		rand: rand.New(rand.NewSource(seed)),
		now:  now.UTC().Truncate(time.Microsecond),
	}
}

// Now is the reference instant PastDate counts back from.
func (g *Generator) Now() time.Time {
	return g.now
}

// IntBetween returns an int in [min, max]. Swapped bounds are tolerated.
func (g *Generator) IntBetween(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + g.rand.Intn(max-min+1)
}

// Price returns a value in [min, max] with exactly two fraction digits.
func (g *Generator) Price(min, max int) decimal.Decimal {
	cents := g.IntBetween(min*100, max*100)
	return decimal.New(int64(cents), -2)
}

// PastDate returns an instant in [now - years, now).
func (g *Generator) PastDate(years int) time.Time {
	if years <= 0 {
		return g.now
	}
	from := g.now.AddDate(-years, 0, 0)
	span := g.now.Sub(from)
	return from.Add(time.Duration(g.rand.Int63n(int64(span)))).Truncate(time.Microsecond)
}

func (g *Generator) FirstName() string {
	return g.pick(firstNames)
}

func (g *Generator) LastName() string {
	return g.pick(lastNames)
}

func (g *Generator) Phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", g.IntBetween(200, 999), g.rand.Intn(1000), g.rand.Intn(10000))
}

func (g *Generator) StreetAddress() string {
	return fmt.Sprintf("%d %s %s", g.IntBetween(1, 9999), g.pick(streetNames), g.pick(streetSuffixes))
}

func (g *Generator) City() string {
	return g.pick(cities)
}

func (g *Generator) PostalCode() string {
	return fmt.Sprintf("%05d", g.rand.Intn(100000))
}

// ProductName follows the "<adjective> <material> <product>" pattern.
func (g *Generator) ProductName() string {
	return g.pick(productAdjectives) + " " + g.pick(productMaterials) + " " + g.pick(productNouns)
}

func (g *Generator) ProductDescription() string {
	return fmt.Sprintf("The %s %s %s %s.",
		g.pick(productAdjectives), g.pick(productNouns), g.pick(descriptionVerbs), g.pick(descriptionEndings))
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rand.Intn(len(pool))]
}
