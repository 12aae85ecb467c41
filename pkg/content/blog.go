package content

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Post is a blog preview card. Excerpt is Markdown.
type Post struct {
	ID       string
	Title    string
	Excerpt  string
	Image    string
	Day      string
	Month    string
	Category string
}

var posts = []Post{
	{
		ID:       "1",
		Title:    "Annual Family Reunion 2024",
		Excerpt:  "Join us for our **annual family reunion**! We're planning an amazing gathering with activities for all ages, delicious food, and plenty of time to reconnect with loved ones.",
		Image:    "https://images.unsplash.com/photo-1511795409834-ef04bbd61622?w=600&h=400&fit=crop",
		Day:      "15",
		Month:    "Dec",
		Category: "Events",
	},
	{
		ID:       "2",
		Title:    "Congratulations to Our Graduates!",
		Excerpt:  "We're proud to celebrate the achievements of our family members who graduated this year. Your hard work and dedication inspire us all!",
		Image:    "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=600&h=400&fit=crop",
		Day:      "08",
		Month:    "Nov",
		Category: "Achievements",
	},
	{
		ID:       "3",
		Title:    "New Family Member Welcome",
		Excerpt:  "We're thrilled to welcome a new addition to our family! Join us in celebrating this joyous occasion and the love that continues to grow our *family tree*.",
		Image:    "https://images.unsplash.com/photo-1522771739844-6a9f6d5f14af?w=600&h=400&fit=crop",
		Day:      "22",
		Month:    "Oct",
		Category: "News",
	},
	{
		ID:       "4",
		Title:    "Family Vacation to Europe",
		Excerpt:  "The family enjoyed an amazing two-week vacation exploring historic cities across Europe. We visited ancestral locations and created unforgettable memories together.",
		Image:    "https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=600&h=400&fit=crop",
		Day:      "28",
		Month:    "Aug",
		Category: "Travel",
	},
	{
		ID:       "5",
		Title:    "Sports Championship Victory",
		Excerpt:  "Congratulations to our family members who won the regional sports championship! Their dedication and teamwork brought home the gold medal.",
		Image:    "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=600&h=400&fit=crop",
		Day:      "15",
		Month:    "Jul",
		Category: "Achievements",
	},
	{
		ID:       "6",
		Title:    "Family Music Concert",
		Excerpt:  "Our talented family members performed a beautiful concert showcasing their musical talents. The event raised funds for local charities and brought joy to all attendees.",
		Image:    "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=600&h=400&fit=crop",
		Day:      "03",
		Month:    "Jul",
		Category: "Events",
	},
}

// Posts returns the blog previews, newest first.
func Posts() []Post {
	return append([]Post(nil), posts...)
}

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer))
	})
	return markdown
}

// ExcerptHTML renders the excerpt's Markdown. Raw HTML in the source is
// dropped by goldmark's default renderer.
func (p Post) ExcerptHTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(p.Excerpt), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
