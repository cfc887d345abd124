package repository

import "time"

// Movie represents a movies row.
type Movie struct {
	ID        string
	Title     string
	Category  string
	Likes     int
	Dislikes  int
	Image     *string
	SortOrder int
	CreatedAt time.Time
}

// ImportRun represents a catalog_imports row.
type ImportRun struct {
	ID        string
	Source    string
	Imported  int
	Skipped   int
	Errors    int
	CreatedAt time.Time
}
