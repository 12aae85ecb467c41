package content

// Link is a labelled anchor.
type Link struct {
	Href  string
	Label string
}

var navLinks = []Link{
	{"#home", "Home"},
	{"#about", "About"},
	{"#blog", "Blog"},
	{"#gallery", "Gallery"},
	{"#recipes", "Recipes"},
	{"#family-tree", "Family Tree"},
	{"#contact", "Contact"},
}

// NavLinks returns the navigation bar entries, one per page section.
func NavLinks() []Link { return append([]Link(nil), navLinks...) }

// FooterLinks returns the footer's quick and explore columns.
func FooterLinks() (quick, explore []Link) {
	return append([]Link(nil), navLinks[:4]...), append([]Link(nil), navLinks[4:]...)
}

// SocialLinks returns the footer's social profiles.
func SocialLinks() []Link {
	return []Link{
		{"https://www.facebook.com/branislavfamily", "Facebook"},
		{"https://www.instagram.com/branislavfamily", "Instagram"},
		{"https://twitter.com/branislavfamily", "Twitter"},
	}
}

// ContactInfo is the contact block.
type ContactInfo struct {
	Email        string
	Phone        string
	PhoneHref    string
	AddressLines []string
}

// Contact returns the family's contact details.
func Contact() ContactInfo {
	return ContactInfo{
		Email:        "info@branislavfamily.com",
		Phone:        "+1 (555) 123-4567",
		PhoneHref:    "tel:+15551234567",
		AddressLines: []string{"123 Family Street", "Heritage City, HC 12345"},
	}
}
