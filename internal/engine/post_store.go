package engine

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"blogapi/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// ListOptions controls ordering of List. A zero Sort keeps insertion order.
type ListOptions struct {
	Sort      model.SortField
	Direction model.SortDirection
}

// SearchQuery holds case-insensitive substrings. A post matches when either
// non-empty query is found in its field.
type SearchQuery struct {
	Title   string
	Content string
}

type PostStore interface {
	List(opts ListOptions) []model.Post
	Search(q SearchQuery) []model.Post
	Get(id int) (model.Post, error)
	Create(title, content string) model.Post
	Update(id int, patch model.PostPatch) (model.Post, error)
	Delete(id int) error
	Len() int
}

/*
MemoryStore keeps posts in a slice in insertion order.
- All access goes through mu; reads take the read lock.
- Id assignment (max+1) and append happen under one write lock.
- Returned posts are copies; callers may keep them without locking.
*/
type MemoryStore struct {
	mu    sync.RWMutex
	posts []model.Post
}

var _ PostStore = (*MemoryStore)(nil)

func NewMemoryStore(seed ...model.Post) *MemoryStore {
	posts := make([]model.Post, len(seed))
	copy(posts, seed)
	return &MemoryStore{posts: posts}
}

func (s *MemoryStore) List(opts ListOptions) []model.Post {
	s.mu.RLock()
	out := make([]model.Post, len(s.posts))
	copy(out, s.posts)
	s.mu.RUnlock()

	if opts.Sort == "" {
		return out
	}

	desc := opts.Direction == model.Desc
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(opts.Sort.Value(out[i]))
		b := strings.ToLower(opts.Sort.Value(out[j]))
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

func (s *MemoryStore) Search(q SearchQuery) []model.Post {
	title := strings.ToLower(q.Title)
	content := strings.ToLower(q.Content)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Post, 0)
	for _, p := range s.posts {
		titleMatch := title != "" && strings.Contains(strings.ToLower(p.Title), title)
		contentMatch := content != "" && strings.Contains(strings.ToLower(p.Content), content)
		if titleMatch || contentMatch {
			out = append(out, p)
		}
	}
	return out
}

func (s *MemoryStore) Get(id int) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Post{}, ErrPostNotFound
	}
	return s.posts[i], nil
}

// Create assigns the next id (current max + 1, or 1 when empty) and appends.
func (s *MemoryStore) Create(title, content string) model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, p := range s.posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	post := model.Post{ID: maxID + 1, Title: title, Content: content}
	s.posts = append(s.posts, post)
	return post
}

func (s *MemoryStore) Update(id int, patch model.PostPatch) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Post{}, ErrPostNotFound
	}
	if patch.Title != nil {
		s.posts[i].Title = *patch.Title
	}
	if patch.Content != nil {
		s.posts[i].Content = *patch.Content
	}
	return s.posts[i], nil
}

func (s *MemoryStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrPostNotFound
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id int) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
