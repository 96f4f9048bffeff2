package dict

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
)

// Load reads every word from src and returns them sorted by bare form.
func Load(ctx context.Context, src Source) ([]models.Word, error) {
	words, err := src.Words(ctx)
	if err != nil {
		return nil, err
	}
	SortWords(words)
	return words, nil
}

// SortWords orders words by bare form using plain byte-wise comparison. Equal forms keep their order.
func SortWords(words []models.Word) {
	slices.SortStableFunc(words, func(a, b models.Word) int {
		return cmp.Compare(a.Bare, b.Bare)
	})
}

// FilterWords returns the words whose bare form contains query. An empty query matches everything.
//
// Matching is case-sensitive.
func FilterWords(words []models.Word, query string) []models.Word {
	if query == "" {
		return words
	}
	var matched []models.Word
	for _, w := range words {
		if strings.Contains(w.Bare, query) {
			matched = append(matched, w)
		}
	}
	return matched
}

// Dictionary is the state behind the word list screen.
type Dictionary struct {
	words   []models.Word
	filter  string
	loading bool
	err     error
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{}
}

// BeginLoad marks the dictionary as loading. A second call before [Dictionary.FinishLoad] is refused
// with [shared.ErrLoadInProgress].
func (d *Dictionary) BeginLoad() error {
	if d.loading {
		return shared.ErrLoadInProgress
	}
	d.loading = true
	d.err = nil
	return nil
}

// FinishLoad ends a load. On success words replace the previous list; on failure the previous list is kept
// and err is recorded.
func (d *Dictionary) FinishLoad(words []models.Word, err error) {
	d.loading = false
	if err != nil {
		d.err = err
		return
	}
	d.Set(words)
	d.err = nil
}

// Set replaces the word list, sorting it by bare form.
func (d *Dictionary) Set(words []models.Word) {
	words = slices.Clone(words)
	SortWords(words)
	d.words = words
}

// Add inserts a word, keeping the list ordered by bare form. Later duplicates of a bare form go after
// earlier ones.
func (d *Dictionary) Add(w models.Word) {
	i, _ := slices.BinarySearchFunc(d.words, w.Bare, func(e models.Word, bare string) int {
		if e.Bare <= bare {
			return -1
		}
		return 1
	})
	d.words = slices.Insert(d.words, i, w)
}

// SetFilter sets the substring the list is filtered by.
func (d *Dictionary) SetFilter(query string) { d.filter = query }

// Filter returns the current filter.
func (d *Dictionary) Filter() string { return d.filter }

// Filtered returns the words matching the current filter.
func (d *Dictionary) Filtered() []models.Word { return FilterWords(d.words, d.filter) }

// Words returns every loaded word.
func (d *Dictionary) Words() []models.Word { return d.words }

// Len returns the number of loaded words.
func (d *Dictionary) Len() int { return len(d.words) }

// IsLoading reports whether a load is in flight.
func (d *Dictionary) IsLoading() bool { return d.loading }

// Err returns the error of the last failed load, if any.
func (d *Dictionary) Err() error { return d.err }
