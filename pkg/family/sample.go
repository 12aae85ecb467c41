package family

// Sample returns the built-in family tree. Each call returns a fresh copy.
func Sample() *Person {
	return &Person{
		ID:   "great-grandfather",
		Name: "Branislav I",
		Role: "Great Grandfather",
		Children: []*Person{
			{
				ID:   "grandfather",
				Name: "Branislav II",
				Role: "Grandfather",
				Children: []*Person{
					{
						ID:   "father-1",
						Name: "Branislav III",
						Role: "Father",
						Children: []*Person{
							{ID: "son-1", Name: "Branislav IV", Role: "Son"},
							{ID: "daughter-1", Name: "Sophia", Role: "Daughter"},
						},
					},
				},
			},
			{
				ID:   "grandmother",
				Name: "Maria",
				Role: "Grandmother",
				Children: []*Person{
					{
						ID:   "father-2",
						Name: "Branislav III",
						Role: "Father",
						Children: []*Person{
							{ID: "son-2", Name: "Branislav IV", Role: "Son"},
							{ID: "daughter-2", Name: "Sophia", Role: "Daughter"},
						},
					},
				},
			},
		},
	}
}
