package search

import (
	"strings"

	"github.com/socialchef/recipedesk/internal/errors"
)

// Cuisine is a closed set of cuisines the recipe service filters on.
// The zero value is CuisineNone.
type Cuisine string

const (
	CuisineNone     Cuisine = ""
	CuisineAmerican Cuisine = "American"
	CuisineItalian  Cuisine = "Italian"
	CuisineMexican  Cuisine = "Mexican"
	CuisineIndian   Cuisine = "Indian"
	CuisineChinese  Cuisine = "Chinese"
	CuisineThai     Cuisine = "Thai"
)

// Diet is a closed set of dietary preferences. The zero value is DietNone.
type Diet string

const (
	DietNone       Diet = ""
	DietVegetarian Diet = "Vegetarian"
	DietVegan      Diet = "Vegan"
	DietGlutenFree Diet = "Gluten Free"
	DietKetogenic  Diet = "Ketogenic"
)

const noneLabel = "None"

// Cuisines lists the selectable cuisines in display order, None first.
var Cuisines = []Cuisine{CuisineNone, CuisineAmerican, CuisineItalian, CuisineMexican, CuisineIndian, CuisineChinese, CuisineThai}

// Diets lists the selectable diets in display order, None first.
var Diets = []Diet{DietNone, DietVegetarian, DietVegan, DietGlutenFree, DietKetogenic}

// Label is the user-facing name.
func (c Cuisine) Label() string {
	if c == CuisineNone {
		return noneLabel
	}
	return string(c)
}

// Param is the outbound request value, or "" for None.
func (c Cuisine) Param() string {
	return strings.ToLower(string(c))
}

// Label is the user-facing name.
func (d Diet) Label() string {
	if d == DietNone {
		return noneLabel
	}
	return string(d)
}

// Param is the outbound request value, or "" for None.
func (d Diet) Param() string {
	return strings.ToLower(string(d))
}

// ParseCuisine accepts a label in any case. "" and "none" select CuisineNone.
func ParseCuisine(s string) (Cuisine, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, noneLabel) {
		return CuisineNone, nil
	}
	for _, c := range Cuisines {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return CuisineNone, errors.NewValidationError("Unknown cuisine: "+s, "UNKNOWN_CUISINE", "Pick one of the listed cuisines.")
}

// ParseDiet accepts a label in any case. "" and "none" select DietNone.
func ParseDiet(s string) (Diet, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, noneLabel) {
		return DietNone, nil
	}
	for _, d := range Diets {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return DietNone, errors.NewValidationError("Unknown dietary preference: "+s, "UNKNOWN_DIET", "Pick one of the listed dietary preferences.")
}

// FilterSelection is the user's current cuisine and diet choice.
// The zero value is None/None.
type FilterSelection struct {
	Cuisine Cuisine `json:"cuisine"`
	Diet    Diet    `json:"diet"`
}

// ParseFilters builds a FilterSelection from raw labels.
func ParseFilters(cuisine, diet string) (FilterSelection, error) {
	c, err := ParseCuisine(cuisine)
	if err != nil {
		return FilterSelection{}, err
	}
	d, err := ParseDiet(diet)
	if err != nil {
		return FilterSelection{}, err
	}
	return FilterSelection{Cuisine: c, Diet: d}, nil
}
