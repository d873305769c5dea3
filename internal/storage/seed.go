package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"blogapi/internal/model"
)

// DefaultSeed returns the posts a fresh server starts with.
func DefaultSeed() []model.Post {
	return []model.Post{
		{ID: 1, Title: "First post", Content: "This is the first post."},
		{ID: 2, Title: "Second post", Content: "This is the second post."},
		{ID: 3, Title: "Flask Tips", Content: "Understanding routes and methods in Flask."},
		{ID: 4, Title: "My Coding Journey", Content: "Today I learned how to build a REST API."},
		{ID: 5, Title: "Frontend Fun", Content: "CSS Grid and Flexbox can be tricky but powerful."},
		{ID: 6, Title: "Backend Basics", Content: "POST, GET, DELETE and PUT are essential HTTP methods."},
	}
}

// LoadSeed reads a JSON array of posts from path. The file is read once at
// startup; nothing is ever written back.
func LoadSeed(path string) ([]model.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	if err := validateSeed(posts); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return posts, nil
}

func validateSeed(posts []model.Post) error {
	seen := make(map[int]bool, len(posts))
	for i, p := range posts {
		if p.ID <= 0 {
			return fmt.Errorf("post #%d: id must be positive, got %d", i, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("post #%d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true
		if p.Title == "" || p.Content == "" {
			return fmt.Errorf("post #%d (id %d): title and content are required", i, p.ID)
		}
	}
	return nil
}
