package query

// Field names of the post documents the clauses apply to.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldLocation     = "location"
	FieldPrice        = "price"
	FieldRatingBucket = "ratingBucket"
	FieldGeometry     = "geometry"
)

// Clause is one condition of a Filter. The concrete types are TextMatch,
// Range, In and Near.
type Clause interface {
	clause()
}

// TextMatch matches when Pattern occurs, case-insensitively, in any of Fields.
// Pattern is a regular expression with every metacharacter already escaped.
type TextMatch struct {
	Fields  []string
	Pattern string
}

type RangeOp int

const (
	Gte RangeOp = iota + 1
	Lte
)

func (op RangeOp) String() string {
	switch op {
	case Gte:
		return ">="
	case Lte:
		return "<="
	}
	return "?"
}

// Range is an inclusive single-bound comparison.
type Range struct {
	Field string
	Op    RangeOp
	Value float64
}

// In matches when Field equals one of Values.
type In struct {
	Field  string
	Values []int
}

// Near matches documents whose point lies within MaxMeters of Center.
// Center is [longitude, latitude].
type Near struct {
	Field     string
	Center    [2]float64
	MaxMeters float64
}

func (TextMatch) clause() {}
func (Range) clause()     {}
func (In) clause()        {}
func (Near) clause()      {}

// Filter is a conjunction of clauses. No clauses means match everything.
type Filter struct {
	Clauses []Clause
}

func (f Filter) MatchAll() bool {
	return len(f.Clauses) == 0
}

func (f *Filter) and(c Clause) {
	f.Clauses = append(f.Clauses, c)
}
