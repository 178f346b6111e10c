// Package orderno issues human-facing order numbers of the form
// HL + YYMMDD + 4-digit suffix, e.g. HL2602194821. The date comes from
// the server's local clock; global uniqueness is enforced by the orders
// table, not here, so callers retry on insert collision.
package orderno

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

const prefix = "HL"

// Pattern matches a fully generated order number.
var Pattern = regexp.MustCompile(`^HL\d{10}$`)

// KeyPattern classifies loose user/admin input as order-number shaped.
// Deliberately wider than Pattern so older or hand-typed numbers still
// route to the order_no index.
var KeyPattern = regexp.MustCompile(`(?i)^HL[0-9A-Za-z]{6,20}$`)

// Generator produces candidate order numbers. Clock and randomness are
// injectable so collision handling can be tested deterministically.
type Generator struct {
	now  func() time.Time
	intn func(n int) int
}

func New() *Generator {
	return &Generator{now: time.Now, intn: rand.Intn}
}

func NewWithSource(now func() time.Time, intn func(n int) int) *Generator {
	return &Generator{now: now, intn: intn}
}

// Next returns a fresh candidate. The suffix is uniform in [1000, 9999],
// which leaves 9000 possible numbers per calendar day.
func (g *Generator) Next() string {
	return fmt.Sprintf("%s%s%04d", prefix, g.now().Format("060102"), 1000+g.intn(9000))
}
