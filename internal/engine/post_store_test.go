package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"blogapi/internal/model"
)

func seedPosts() []model.Post {
	return []model.Post{
		{ID: 1, Title: "banana bread", Content: "Flour and bananas."},
		{ID: 2, Title: "Apple pie", Content: "Cinnamon apples."},
		{ID: 3, Title: "cherry tart", Content: "flask of cherries"},
	}
}

func ids(posts []model.Post) []int {
	out := make([]int, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func equalIDs(t *testing.T, got []model.Post, want ...int) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

func TestCreateAssignsMaxPlusOne(t *testing.T) {
	s := NewMemoryStore(seedPosts()...)

	p := s.Create("Hi", "There")
	if p.ID != 4 || p.Title != "Hi" || p.Content != "There" {
		t.Fatalf("unexpected created post: %+v", p)
	}

	// Gaps do not matter, only the current maximum.
	if err := s.Delete(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if p := s.Create("x", "y"); p.ID != 5 {
		t.Fatalf("expected id 5, got %d", p.ID)
	}
}

func TestCreateOnEmptyStoreStartsAtOne(t *testing.T) {
	s := NewMemoryStore()
	if p := s.Create("a", "b"); p.ID != 1 {
		t.Fatalf("expected id 1, got %d", p.ID)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestListKeepsInsertionOrderWithoutSort(t *testing.T) {
	s := NewMemoryStore(seedPosts()...)
	s.Create("aaa", "zzz")
	equalIDs(t, s.List(ListOptions{}), 1, 2, 3, 4)
}

func TestListSortsCaseInsensitive(t *testing.T) {
	s := NewMemoryStore(seedPosts()...)

	equalIDs(t, s.List(ListOptions{Sort: model.SortByTitle, Direction: model.Asc}), 2, 1, 3)
	equalIDs(t, s.List(ListOptions{Sort: model.SortByTitle, Direction: model.Desc}), 3, 1, 2)
	equalIDs(t, s.List(ListOptions{Sort: model.SortByContent, Direction: model.Asc}), 2, 3, 1)

	// Sorting never reorders the store itself.
	equalIDs(t, s.List(ListOptions{}), 1, 2, 3)
}

func TestListSortIsStableForEqualKeys(t *testing.T) {
	s := NewMemoryStore(
		model.Post{ID: 1, Title: "Same", Content: "a"},
		model.Post{ID: 2, Title: "same", Content: "b"},
		model.Post{ID: 3, Title: "Other", Content: "c"},
	)
	equalIDs(t, s.List(ListOptions{Sort: model.SortByTitle, Direction: model.Asc}), 3, 1, 2)
	equalIDs(t, s.List(ListOptions{Sort: model.SortByTitle, Direction: model.Desc}), 1, 2, 3)
}

func TestSearch(t *testing.T) {
	s := NewMemoryStore(seedPosts()...)

	cases := []struct {
		name string
		q    SearchQuery
		want []int
	}{
		{"title only", SearchQuery{Title: "APPLE"}, []int{2}},
		{"content only", SearchQuery{Content: "flask"}, []int{3}},
		{"union of both", SearchQuery{Title: "banana", Content: "cinnamon"}, []int{1, 2}},
		{"no query matches nothing", SearchQuery{}, []int{}},
		{"no hit", SearchQuery{Title: "pizza"}, []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Search(tc.q)
			if got == nil {
				t.Fatalf("search returned nil slice")
			}
			equalIDs(t, got, tc.want...)
		})
	}
}

func TestGet(t *testing.T) {
	s := NewMemoryStore(seedPosts()...)
	p, err := s.Get(3)
	if err != nil || p.Title != "cherry tart" {
		t.Fatalf("get 3: %+v, %v", p, err)
	}
	if _, err := s.Get(42); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	s := NewMemoryStore(seedPosts()...)

	title := "Banana loaf"
	got, err := s.Update(1, model.PostPatch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != title || got.Content != "Flour and bananas." {
		t.Fatalf("unexpected post after title update: %+v", got)
	}

	content := "More flour."
	got, err = s.Update(1, model.PostPatch{Content: &content})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != title || got.Content != content {
		t.Fatalf("unexpected post after content update: %+v", got)
	}

	got, err = s.Update(1, model.PostPatch{})
	if err != nil || got.Title != title || got.Content != content {
		t.Fatalf("empty patch changed post: %+v, %v", got, err)
	}

	if _, err := s.Update(99, model.PostPatch{Title: &title}); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := NewMemoryStore(seedPosts()...)

	if err := s.Delete(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	equalIDs(t, s.List(ListOptions{}), 1, 3)

	if err := s.Delete(2); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound on second delete, got %v", err)
	}
}

func TestReturnedPostsAreCopies(t *testing.T) {
	s := NewMemoryStore(seedPosts()...)
	list := s.List(ListOptions{})
	list[0].Title = "mutated"

	p, _ := s.Get(1)
	if p.Title != "banana bread" {
		t.Fatalf("store aliased caller slice: %q", p.Title)
	}
}

func TestConcurrentCreatesGetUniqueIDs(t *testing.T) {
	s := NewMemoryStore()
	const n = 64

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Create(fmt.Sprintf("t%d", i), "c")
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, n)
	for _, p := range s.List(ListOptions{}) {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d posts, got %d", n, len(seen))
	}
}
