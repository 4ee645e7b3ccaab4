package resolver

// DefaultFoodTable returns the built-in kcal/100g table. Fixed at process
// start; lookups here never touch the cache.
func DefaultFoodTable() map[string]int {
	return map[string]int{
		"яблоко": 52,
		"банан":  96,
		"хлеб":   265,
		"молоко": 42,
		"сыр":    402,
		"курица": 239,
		"рис":    130,
		"яйцо":   155,
	}
}
