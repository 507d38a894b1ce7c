package models

import "slices"

// OtherTreeType lets submitters record a species outside the catalog.
const OtherTreeType = "Lainnya"

// TreeCatalog lists the species offered by the registration form per category.
var TreeCatalog = map[string][]string{
	CategoryFruit: {
		"Mangga", "Rambutan", "Durian", "Jeruk", "Jambu",
		"Alpukat", "Pepaya", "Pisang", "Kelapa", OtherTreeType,
	},
	CategoryTimber: {
		"Jati", "Mahoni", "Sengon", "Meranti", "Akasia",
		"Sonokeling", "Trembesi", "Pinus", "Eucalyptus", OtherTreeType,
	},
}

// IsKnownTreeType reports whether treeType belongs to category in the catalog.
func IsKnownTreeType(category, treeType string) bool {
	return slices.Contains(TreeCatalog[category], treeType)
}
