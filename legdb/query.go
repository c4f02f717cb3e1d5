package legdb

import (
	"fmt"
	"strings"
	"time"

	"github.com/skypies/util/date"
	"gorm.io/gorm"
)

// Query is a thin skin over gorm's chained conditions. It exists so that queries can be
// built up by callers that don't hold a DB handle, and so they can be dumped to the log.
type Query struct {
	Filters  []Filter
	OrderStr string
	LimitVal int
}

type Filter struct {
	Clause string // with a single '?' placeholder
	Value  interface{}
}

func (q *Query) String() string {
	str := "NewQuery()\n"
	for _, f := range q.Filters {
		str += fmt.Sprintf("  .Where(%q, %v)\n", f.Clause, f.Value)
	}
	if q.OrderStr != "" {
		str += fmt.Sprintf("  .Order(%q)\n", q.OrderStr)
	}
	if q.LimitVal != 0 {
		str += fmt.Sprintf("  .Limit(%d)\n", q.LimitVal)
	}
	return str
}

func NewQuery() *Query { return &Query{OrderStr: "departure"} }

func (q *Query) Filter(clause string, val interface{}) *Query {
	q.Filters = append(q.Filters, Filter{clause, val})
	return q
}

func (q *Query) Order(o string) *Query {
	q.OrderStr = o
	return q
}

func (q *Query) Limit(l int) *Query {
	q.LimitVal = l
	return q
}

func (q *Query) ByIcao(icao string) *Query {
	return q.Filter("icao = ?", strings.ToLower(icao))
}

func (q *Query) ByRegistration(reg string) *Query {
	return q.Filter("registration = ?", strings.ToUpper(reg))
}

// InRegister matches tails from one national register (e.g. "OY"). US N-numbers have no
// dash.
func (q *Query) InRegister(prefix string) *Query {
	prefix = strings.ToUpper(strings.TrimSuffix(prefix, "-"))
	if prefix == "N" {
		return q.Filter("registration LIKE ?", "N%")
	}
	return q.Filter("registration LIKE ?", prefix+"-%")
}

func (q *Query) ForDay(t time.Time) *Query {
	return q.Filter("date = ?", date.TruncateToUTCDay(t))
}

// Between matches legs that departed in [s,e).
func (q *Query) Between(s, e time.Time) *Query {
	return q.Filter("departure >= ?", s).Filter("departure < ?", e)
}

func (q *Query) apply(tx *gorm.DB) *gorm.DB {
	for _, f := range q.Filters {
		tx = tx.Where(f.Clause, f.Value)
	}
	if q.OrderStr != "" {
		tx = tx.Order(q.OrderStr)
	}
	if q.LimitVal != 0 {
		tx = tx.Limit(q.LimitVal)
	}
	return tx
}
