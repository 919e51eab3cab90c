package quote

import (
	"math"
	"strings"
)

// Table maps an exact item description to its cumulated quantity
type Table map[string]float64

// Session holds the aggregation state of one document analysis.
// It is not safe for concurrent use.
type Session struct {
	aggregated    Table
	totalRows     int
	pagesAnalyzed int
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{aggregated: make(Table)}
}

// Commit adds qty to the total of description. Descriptions are only
// whitespace-normalized, so keys differing by case or accents stay apart.
// It returns false and records nothing for an empty description or a
// quantity that is not a finite positive number.
func (s *Session) Commit(description string, qty float64) bool {
	description = strings.Join(strings.Fields(description), " ")
	if description == "" || qty <= 0 || math.IsInf(qty, 0) || math.IsNaN(qty) {
		return false
	}
	s.aggregated[description] += qty
	s.totalRows++
	return true
}

// Reset clears every counter and the aggregation table
func (s *Session) Reset() {
	s.aggregated = make(Table)
	s.totalRows = 0
	s.pagesAnalyzed = 0
}

// Snapshot returns a copy of the aggregation table
func (s *Session) Snapshot() Table {
	out := make(Table, len(s.aggregated))
	for k, v := range s.aggregated {
		out[k] = v
	}
	return out
}

func (s *Session) TotalRows() int {
	return s.totalRows
}

func (s *Session) UniqueCount() int {
	return len(s.aggregated)
}

func (s *Session) PagesAnalyzed() int {
	return s.pagesAnalyzed
}

func (s *Session) setPagesAnalyzed(n int) {
	s.pagesAnalyzed = n
}
