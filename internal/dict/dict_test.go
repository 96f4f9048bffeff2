package dict

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
)

func bares(words []models.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Bare
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("bundled asset is sorted by bare", func(t *testing.T) {
		words, err := Load(ctx, Bundled())
		if err != nil {
			t.Fatalf("failed to load bundled words: %v", err)
		}

		if len(words) != 16 {
			t.Fatalf("expected 16 words, got %d", len(words))
		}

		for i := 1; i < len(words); i++ {
			if words[i-1].Bare > words[i].Bare {
				t.Errorf("not sorted at %d: %q > %q", i, words[i-1].Bare, words[i].Bare)
			}
		}

		if words[0].Bare != "вода" || words[len(words)-1].Bare != "язык" {
			t.Errorf("unexpected bounds: %q .. %q", words[0].Bare, words[len(words)-1].Bare)
		}
	})

	t.Run("file source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.json")
		content := `[{"id": 2, "bare": "b"}, {"id": 1, "bare": "a", "usage_en": "first"}]`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write asset: %v", err)
		}

		words, err := Load(ctx, FileSource(path))
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if !equal(bares(words), []string{"a", "b"}) {
			t.Errorf("got %v", bares(words))
		}
		if words[0].UsageEN != "first" {
			t.Errorf("usage_en not decoded, got %q", words[0].UsageEN)
		}
	})

	t.Run("missing asset", func(t *testing.T) {
		src := AssetSource{FS: fstest.MapFS{}, Name: AssetName}
		if _, err := Load(ctx, src); !errors.Is(err, shared.ErrAssetUnreadable) {
			t.Errorf("expected ErrAssetUnreadable, got %v", err)
		}
	})

	t.Run("malformed asset", func(t *testing.T) {
		src := AssetSource{FS: fstest.MapFS{AssetName: {Data: []byte(`{"id": 1`)}}, Name: AssetName}
		if _, err := Load(ctx, src); !errors.Is(err, shared.ErrAssetInvalid) {
			t.Errorf("expected ErrAssetInvalid, got %v", err)
		}
	})

	t.Run("record without bare form", func(t *testing.T) {
		src := AssetSource{FS: fstest.MapFS{AssetName: {Data: []byte(`[{"id": 1}]`)}}, Name: AssetName}
		if _, err := Load(ctx, src); !errors.Is(err, shared.ErrAssetInvalid) {
			t.Errorf("expected ErrAssetInvalid, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := Load(cctx, Bundled()); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestFilterWords(t *testing.T) {
	words := []models.Word{{Bare: "дом"}, {Bare: "домой"}, {Bare: "книга"}, {Bare: "Дом"}}

	tc := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty matches all", query: "", want: []string{"дом", "домой", "книга", "Дом"}},
		{name: "substring", query: "дом", want: []string{"дом", "домой"}},
		{name: "inner substring", query: "ниг", want: []string{"книга"}},
		{name: "case sensitive", query: "Д", want: []string{"Дом"}},
		{name: "no match", query: "xyz", want: []string{}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := bares(FilterWords(words, tt.query))
			if !equal(got, tt.want) {
				t.Errorf("FilterWords(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestDictionary(t *testing.T) {
	t.Run("load lifecycle", func(t *testing.T) {
		d := New()

		if err := d.BeginLoad(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.IsLoading() {
			t.Error("expected loading flag to be set")
		}

		if err := d.BeginLoad(); !errors.Is(err, shared.ErrLoadInProgress) {
			t.Errorf("expected ErrLoadInProgress, got %v", err)
		}

		d.FinishLoad([]models.Word{{ID: 1, Bare: "a"}}, nil)
		if d.IsLoading() || d.Len() != 1 || d.Err() != nil {
			t.Errorf("unexpected state after load: loading=%v len=%d err=%v", d.IsLoading(), d.Len(), d.Err())
		}
	})

	t.Run("failed load keeps previous words", func(t *testing.T) {
		d := New()
		d.Set([]models.Word{{ID: 1, Bare: "a"}})

		_ = d.BeginLoad()
		d.FinishLoad(nil, shared.ErrAssetInvalid)

		if d.Len() != 1 {
			t.Errorf("expected previous words to survive, got %d", d.Len())
		}
		if !errors.Is(d.Err(), shared.ErrAssetInvalid) {
			t.Errorf("expected recorded error, got %v", d.Err())
		}

		_ = d.BeginLoad()
		if d.Err() != nil {
			t.Error("starting a new load should clear the previous error")
		}
	})

	t.Run("filter", func(t *testing.T) {
		d := New()
		d.Set([]models.Word{{Bare: "домой"}, {Bare: "книга"}, {Bare: "дом"}})
		d.SetFilter("дом")

		if d.Filter() != "дом" {
			t.Errorf("Filter() = %q", d.Filter())
		}
		if got := bares(d.Filtered()); !equal(got, []string{"дом", "домой"}) {
			t.Errorf("Filtered() = %v", got)
		}
	})

	t.Run("add keeps order", func(t *testing.T) {
		d := New()
		d.Set([]models.Word{{ID: 1, Bare: "b"}, {ID: 2, Bare: "d"}})

		d.Add(models.Word{ID: 3, Bare: "c"})
		d.Add(models.Word{ID: 4, Bare: "a"})
		d.Add(models.Word{ID: 5, Bare: "e"})
		d.Add(models.Word{ID: 6, Bare: "c"})

		if got := bares(d.Words()); !equal(got, []string{"a", "b", "c", "c", "d", "e"}) {
			t.Errorf("Words() = %v", got)
		}
		if d.Words()[3].ID != 6 {
			t.Errorf("duplicate bare form should be inserted after the existing one, got id %d", d.Words()[3].ID)
		}
	})

	t.Run("add to empty", func(t *testing.T) {
		d := New()
		d.Add(models.Word{ID: 1, Bare: "x"})
		if d.Len() != 1 {
			t.Errorf("expected 1 word, got %d", d.Len())
		}
	})
}
