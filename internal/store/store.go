// Package store holds the per-session Favorites and Meal Plan collections.
package store

import (
	"sync"

	"github.com/socialchef/recipedesk/internal/search"
)

const (
	FavoritesName = "Favorites"
	MealPlanName  = "Meal Plan"
)

// Store is an ordered collection of recipe summaries. Insertion order is kept
// and the same recipe may appear more than once.
type Store struct {
	name string

	mu      sync.RWMutex
	recipes []search.RecipeSummary
}

// New returns an empty store.
func New(name string) *Store {
	return &Store{name: name}
}

// NewFavorites returns an empty Favorites store.
func NewFavorites() *Store { return New(FavoritesName) }

// NewMealPlan returns an empty Meal Plan store.
func NewMealPlan() *Store { return New(MealPlanName) }

func (s *Store) Name() string { return s.name }

// Add appends recipe.
func (s *Store) Add(recipe search.RecipeSummary) {
	s.mu.Lock()
	s.recipes = append(s.recipes, recipe)
	s.mu.Unlock()
}

// List returns a copy of the stored recipes in insertion order.
func (s *Store) List() []search.RecipeSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]search.RecipeSummary, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Find returns the first stored recipe with the given id.
func (s *Store) Find(id int) (search.RecipeSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return search.RecipeSummary{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

func (s *Store) IsEmpty() bool { return s.Len() == 0 }
