package content

import (
	"testing"

	"github.com/branislavfamily/familysite/pkg/errors"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{"", 12},
		{CategoryAll, 12},
		{CategoryReunion, 3},
		{CategoryWedding, 3},
		{CategoryCelebration, 3},
		{CategoryDaily, 3},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, err := Filter(tt.category)
			if err != nil {
				t.Fatalf("Filter(%q) error: %v", tt.category, err)
			}
			if len(got) != tt.want {
				t.Errorf("len(Filter(%q)) = %d, want %d", tt.category, len(got), tt.want)
			}
			for _, img := range got {
				if tt.category != "" && tt.category != CategoryAll && img.Category != tt.category {
					t.Errorf("image %s has category %q", img.ID, img.Category)
				}
			}
		})
	}
}

func TestFilterUnknown(t *testing.T) {
	_, err := Filter("bogus")
	if !errors.Is(err, errors.ErrCodeInvalidCategory) {
		t.Errorf("Filter(bogus) error = %v, want INVALID_CATEGORY", err)
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel("celebration"); got != "Celebration" {
		t.Errorf("CategoryLabel() = %q", got)
	}
	if got := CategoryLabel(""); got != "" {
		t.Errorf("CategoryLabel(\"\") = %q", got)
	}
	if len(Categories()) != 5 {
		t.Errorf("len(Categories()) = %d, want 5", len(Categories()))
	}
}

func TestLightboxWraps(t *testing.T) {
	lb, err := OpenLightbox(CategoryWedding, "10")
	if err != nil {
		t.Fatalf("OpenLightbox() error: %v", err)
	}
	if pos, n := lb.Position(); pos != 3 || n != 3 {
		t.Fatalf("Position() = %d/%d, want 3/3", pos, n)
	}
	if got := lb.Next().ID; got != "2" {
		t.Errorf("Next() from last = %s, want 2", got)
	}
	if got := lb.Prev().ID; got != "10" {
		t.Errorf("Prev() from first = %s, want 10", got)
	}
	if got := lb.Prev().ID; got != "6" {
		t.Errorf("Prev() = %s, want 6", got)
	}
	prev, next := lb.Neighbors()
	if prev.ID != "2" || next.ID != "10" {
		t.Errorf("Neighbors() = %s, %s, want 2, 10", prev.ID, next.ID)
	}
	if lb.Current().ID != "6" {
		t.Errorf("Neighbors() moved the lightbox to %s", lb.Current().ID)
	}
}

func TestLightboxFullCycle(t *testing.T) {
	lb, err := OpenLightbox(CategoryAll, "1")
	if err != nil {
		t.Fatalf("OpenLightbox() error: %v", err)
	}
	for i := 0; i < 12; i++ {
		lb.Next()
	}
	if lb.Current().ID != "1" {
		t.Errorf("12 x Next() ended at %s, want 1", lb.Current().ID)
	}
}

func TestOpenLightboxErrors(t *testing.T) {
	tests := []struct {
		name     string
		category string
		id       string
		code     errors.Code
	}{
		{"not in category", CategoryDaily, "1", errors.ErrCodeImageNotFound},
		{"unknown id", CategoryAll, "99", errors.ErrCodeImageNotFound},
		{"bad id", CategoryAll, "../etc", errors.ErrCodeInvalidID},
		{"bad category", "nope", "1", errors.ErrCodeInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenLightbox(tt.category, tt.id)
			if !errors.Is(err, tt.code) {
				t.Errorf("OpenLightbox(%q, %q) error = %v, want %s", tt.category, tt.id, err, tt.code)
			}
		})
	}
}
