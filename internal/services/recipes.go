package services

import "strings"

// recipes maps a spoken recipe name to the catalog items it needs.
// Matching is case-insensitive on the trimmed name.
var recipes = map[string][]string{
	"spaghetti dinner":   {"spaghetti", "tomato-sauce", "parmesan"},
	"pancake breakfast":  {"flour", "eggs-dozen", "whole-milk", "butter", "maple-syrup"},
	"taco night":         {"tortillas", "ground-beef", "salsa"},
	"morning coffee run": {"coffee-beans", "whole-milk"},
}

func LookupRecipe(name string) ([]string, bool) {
	items, ok := recipes[strings.ToLower(strings.TrimSpace(name))]
	return items, ok
}

// RecipeNames lists the known recipes, for speech prompts.
func RecipeNames() []string {
	out := make([]string, 0, len(recipes))
	for name := range recipes {
		out = append(out, name)
	}
	return out
}
