package content

// Recipe is a recipe card.
type Recipe struct {
	ID          string
	Title       string
	Description string
	Image       string
}

var recipes = []Recipe{
	{"1", "Grandmother's Casserole", "A beloved family recipe that has been passed down for generations. Perfect for family gatherings.",
		"https://images.unsplash.com/photo-1556910103-1c02745aae4d?w=600&h=400&fit=crop"},
	{"2", "Holiday Celebration Cake", "Our signature dessert that makes every celebration special. A family favorite for birthdays and holidays.",
		"https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=600&h=400&fit=crop"},
	{"3", "Family Bread Recipe", "Fresh baked bread that brings the whole family together. The aroma fills our home with love and tradition.",
		"https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=600&h=400&fit=crop"},
	{"4", "Comfort Soup", "A warm, comforting soup that has been a family staple for generations. Perfect for any season.",
		"https://images.unsplash.com/photo-1565958011703-44f9829ba187?w=600&h=400&fit=crop"},
}

// Recipes returns the recipe cards.
func Recipes() []Recipe {
	return append([]Recipe(nil), recipes...)
}
