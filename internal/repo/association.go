package repo

// Multiplicity is the number of records an association yields.
type Multiplicity int

const (
	// ToMany yields zero or more records.
	ToMany Multiplicity = iota
	// ToOne yields zero or one record.
	ToOne
)

func (m Multiplicity) String() string {
	if m == ToOne {
		return "one"
	}
	return "many"
}

// Loader is an association that Load can populate.
//
// The interface is sealed: HasMany and HasOne are its only
// implementations, and only Load moves them from not loaded to loaded.
type Loader[R Record] interface {
	Multiplicity() Multiplicity
	IsLoaded() bool

	query() Query[R]
	store(records []R)
}

// HasMany is a lazily loaded one-to-many relation.
//
// An association is loaded at most once and never refreshed. It holds no
// lock: concurrent calls to Load on the same association must be
// serialised by the caller.
type HasMany[R Record] struct {
	q       Query[R]
	records []R
	loaded  bool
}

// NewHasMany returns a not yet loaded association populated by q.
func NewHasMany[R Record](q Query[R]) *HasMany[R] {
	return &HasMany[R]{q: q}
}

func (a *HasMany[R]) Multiplicity() Multiplicity { return ToMany }

// IsLoaded reports whether Load completed for this association.
func (a *HasMany[R]) IsLoaded() bool { return a.loaded }

// Records returns the loaded records in row order. ok is false until the
// association is loaded; once loaded the slice is never nil.
func (a *HasMany[R]) Records() (records []R, ok bool) {
	if !a.loaded {
		return nil, false
	}
	return a.records, true
}

func (a *HasMany[R]) query() Query[R] { return a.q }

func (a *HasMany[R]) store(records []R) {
	if a.loaded {
		return
	}
	if records == nil {
		records = []R{}
	}
	a.records = records
	a.loaded = true
}

// HasOne is a lazily loaded relation to at most one record.
//
// Like HasMany it is loaded at most once and must not be loaded
// concurrently.
type HasOne[R Record] struct {
	q      Query[R]
	record R
	found  bool
	loaded bool
}

// NewHasOne returns a not yet loaded association populated by q.
func NewHasOne[R Record](q Query[R]) *HasOne[R] {
	return &HasOne[R]{q: q}
}

func (a *HasOne[R]) Multiplicity() Multiplicity { return ToOne }

// IsLoaded reports whether Load completed for this association.
func (a *HasOne[R]) IsLoaded() bool { return a.loaded }

// Record returns the loaded record. found is false when the query matched
// no row; loaded is false until the association is loaded.
func (a *HasOne[R]) Record() (record R, found bool, loaded bool) {
	return a.record, a.found, a.loaded
}

func (a *HasOne[R]) query() Query[R] { return a.q }

func (a *HasOne[R]) store(records []R) {
	if a.loaded {
		return
	}
	if len(records) > 0 {
		a.record = records[0]
		a.found = true
	}
	a.loaded = true
}
