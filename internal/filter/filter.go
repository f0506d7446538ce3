// Package filter decides which projects are visible under the current date
// bucket and type selector.
package filter

import (
	"math"
	"time"

	"github.com/alexanderramin/plantmap/internal/domain"
)

// Criteria is the pair of selectors applied to every cell.
type Criteria struct {
	Date domain.DateBucket
	Type domain.TypeSelector
}

// All matches every project.
var All = Criteria{Date: domain.BucketAll, Type: domain.TypeAll}

// IsAll reports whether c lets every project through.
func (c Criteria) IsAll() bool {
	return (c.Date == "" || c.Date == domain.BucketAll) &&
		(c.Type == "" || c.Type == domain.TypeAll)
}

// DaysUntil returns the ceiling of (start - now) in whole days. Past start
// dates yield negative values, except within the last 24 hours where the
// ceiling rounds up to zero.
func DaysUntil(start, now time.Time) int {
	diff := start.Sub(now).Hours() / 24
	return int(math.Ceil(diff))
}

// Matches reports whether p passes both the date bucket and the type
// selector. An empty bucket or selector behaves like "all".
func Matches(p *domain.Project, bucket domain.DateBucket, selector domain.TypeSelector, now time.Time) bool {
	if selector != "" && selector != domain.TypeAll && domain.ProjectType(selector) != p.Type {
		return false
	}
	switch bucket {
	case "", domain.BucketAll:
		return true
	case domain.BucketToday:
		return DaysUntil(p.StartDate, now) == 0
	case domain.BucketWeek:
		d := DaysUntil(p.StartDate, now)
		return d >= 0 && d <= 7
	case domain.BucketMonth:
		d := DaysUntil(p.StartDate, now)
		return d >= 0 && d <= 30
	}
	return false
}

// Match is Matches with the selectors taken from c.
func (c Criteria) Match(p *domain.Project, now time.Time) bool {
	return Matches(p, c.Date, c.Type, now)
}

// Apply returns the projects of ps that match c, preserving order.
func (c Criteria) Apply(ps []*domain.Project, now time.Time) []*domain.Project {
	if len(ps) == 0 {
		return nil
	}
	out := make([]*domain.Project, 0, len(ps))
	for _, p := range ps {
		if c.Match(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// Types returns the type tags of ps in order.
func Types(ps []*domain.Project) []domain.ProjectType {
	out := make([]domain.ProjectType, len(ps))
	for i, p := range ps {
		out[i] = p.Type
	}
	return out
}
