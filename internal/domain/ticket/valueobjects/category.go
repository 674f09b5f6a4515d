package valueobjects

import "fmt"

type Category string

const (
	CategoryNetwork        Category = "network"
	CategorySecurity       Category = "security"
	CategoryInfrastructure Category = "infrastructure"
	CategoryOther          Category = "other"
)

var AllCategories = []Category{CategoryNetwork, CategorySecurity, CategoryInfrastructure, CategoryOther}

var validCategories = map[Category]bool{
	CategoryNetwork:        true,
	CategorySecurity:       true,
	CategoryInfrastructure: true,
	CategoryOther:          true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
