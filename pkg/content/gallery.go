package content

import (
	"strings"

	"github.com/branislavfamily/familysite/pkg/errors"
)

// Gallery categories. CategoryAll matches every image.
const (
	CategoryAll         = "all"
	CategoryReunion     = "reunion"
	CategoryWedding     = "wedding"
	CategoryCelebration = "celebration"
	CategoryDaily       = "daily"
)

var categories = []string{CategoryAll, CategoryReunion, CategoryWedding, CategoryCelebration, CategoryDaily}

// Categories returns the filter categories in display order.
func Categories() []string {
	return append([]string(nil), categories...)
}

// CategoryLabel returns the button label for a category.
func CategoryLabel(c string) string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(c[:1]) + c[1:]
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, k := range categories {
		if k == c {
			return true
		}
	}
	return false
}

// Image is a gallery photo.
type Image struct {
	ID       string
	Src      string
	Alt      string
	Category string
}

var images = []Image{
	{"1", "https://images.unsplash.com/photo-1511895426328-dc8714191300?w=600&h=600&fit=crop", "Family Reunion", CategoryReunion},
	{"2", "https://images.unsplash.com/photo-1519741497674-611481863552?w=600&h=600&fit=crop", "Wedding", CategoryWedding},
	{"3", "https://images.unsplash.com/photo-1530103862676-de8c9debad1d?w=600&h=600&fit=crop", "Celebration", CategoryCelebration},
	{"4", "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?w=600&h=600&fit=crop", "Daily Life", CategoryDaily},
	{"5", "https://images.unsplash.com/photo-1522771739844-6a9f6d5f14af?w=600&h=600&fit=crop", "Family Gathering", CategoryReunion},
	{"6", "https://images.unsplash.com/photo-1465495976277-4387d4b0b4c6?w=600&h=600&fit=crop", "Wedding Ceremony", CategoryWedding},
	{"7", "https://images.unsplash.com/photo-1511795409834-ef04bbd61622?w=600&h=600&fit=crop", "Anniversary", CategoryCelebration},
	{"8", "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c?w=600&h=600&fit=crop", "Family Time", CategoryDaily},
	{"9", "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=600&h=600&fit=crop", "Family Portrait", CategoryReunion},
	{"10", "https://images.unsplash.com/photo-1511285560929-80b456fea0bc?w=600&h=600&fit=crop", "Wedding Reception", CategoryWedding},
	{"11", "https://images.unsplash.com/photo-1534078362425-387ae9668c17?w=600&h=600&fit=crop", "Party", CategoryCelebration},
	{"12", "https://images.unsplash.com/photo-1544027993-37dbfe43562a?w=600&h=600&fit=crop", "Family Dinner", CategoryDaily},
}

// Images returns every gallery image in display order.
func Images() []Image {
	return append([]Image(nil), images...)
}

// Filter returns the images in category c, keeping display order.
// An empty category is treated as CategoryAll.
func Filter(c string) ([]Image, error) {
	if c == "" {
		c = CategoryAll
	}
	if !ValidCategory(c) {
		return nil, errors.New(errors.ErrCodeInvalidCategory, "unknown category %q", c)
	}
	var out []Image
	for _, img := range images {
		if c == CategoryAll || img.Category == c {
			out = append(out, img)
		}
	}
	return out, nil
}

// Lightbox is an open full-size view positioned within a filtered list.
type Lightbox struct {
	Category string
	images   []Image
	index    int
}

// OpenLightbox opens image id within category c. The image must belong to
// the filtered list.
func OpenLightbox(c, id string) (*Lightbox, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	list, err := Filter(c)
	if err != nil {
		return nil, err
	}
	for i, img := range list {
		if img.ID == id {
			if c == "" {
				c = CategoryAll
			}
			return &Lightbox{Category: c, images: list, index: i}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeImageNotFound, "image %q not in category %q", id, c)
}

// Current returns the image on display.
func (l *Lightbox) Current() Image { return l.images[l.index] }

// Position returns the 1-based position and the list length.
func (l *Lightbox) Position() (int, int) { return l.index + 1, len(l.images) }

// Next advances to the following image, wrapping to the first.
func (l *Lightbox) Next() Image {
	l.index = (l.index + 1) % len(l.images)
	return l.Current()
}

// Prev steps back to the preceding image, wrapping to the last.
func (l *Lightbox) Prev() Image {
	l.index = (l.index - 1 + len(l.images)) % len(l.images)
	return l.Current()
}

// Neighbors returns the previous and next images without moving.
func (l *Lightbox) Neighbors() (prev, next Image) {
	n := len(l.images)
	return l.images[(l.index-1+n)%n], l.images[(l.index+1)%n]
}
