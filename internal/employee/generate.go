package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// DefaultCount is the number of records generated when none is requested.
const DefaultCount = 100

// Salary bounds for generated records.
const (
	MinSalary = 30000
	MaxSalary = 150000
)

// hireWindow is how far back generated hire dates reach.
const hireWindow = 5 * 365 * 24 * time.Hour

// Departments are the department names used by the generator.
var Departments = []string{
	"Automotive", "Baby", "Beauty", "Books", "Clothing", "Computers",
	"Electronics", "Games", "Garden", "Grocery", "Health", "Home",
	"Industrial", "Jewelery", "Kids", "Movies", "Music", "Outdoors",
	"Shoes", "Sports", "Tools", "Toys",
}

// GenerateOptions controls synthetic data generation.
type GenerateOptions struct {
	Count int
	// Seed makes the output reproducible. Zero picks a random seed.
	Seed uint64
	// Now anchors the hire-date window. Zero means time.Now().
	Now time.Time
}

// Generate builds Count synthetic employees with ids 1..Count.
func Generate(opts GenerateOptions) []Employee {
	if opts.Count <= 0 {
		return []Employee{}
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC().Truncate(time.Second)
	f := gofakeit.New(opts.Seed)

	out := make([]Employee, opts.Count)
	for i := range out {
		first := f.FirstName()
		last := f.LastName()
		out[i] = Employee{
			ID:         i + 1,
			FirstName:  first,
			LastName:   last,
			Email:      emailFor(first, last, f.DomainName()),
			Phone:      f.Phone(),
			Department: f.RandomString(Departments),
			Salary:     f.IntRange(MinSalary, MaxSalary),
			HireDate:   f.DateRange(now.Add(-hireWindow), now).UTC().Truncate(time.Second),
			IsActive:   f.Bool(),
		}
	}
	return out
}

func emailFor(first, last, domain string) string {
	local := strings.ToLower(fmt.Sprintf("%s.%s", first, last))
	local = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\'' {
			return -1
		}
		return r
	}, local)
	return local + "@" + domain
}
