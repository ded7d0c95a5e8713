// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table         string
	ID            string
	Title         string
	Author        string
	ISBN          string
	Description   string
	CoverImage    string
	Genres        string
	Mood          string
	PublishedYear string
	PageCount     string
	Rating        string
	ReviewCount   string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:         "catalog.book",
	ID:            "id",
	Title:         "title",
	Author:        "author",
	ISBN:          "isbn",
	Description:   "description",
	CoverImage:    "coverimage",
	Genres:        "genres",
	Mood:          "mood",
	PublishedYear: "publishedyear",
	PageCount:     "pagecount",
	Rating:        "rating",
	ReviewCount:   "reviewcount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all column names in scan order.
func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.ISBN, t.Description, t.CoverImage, t.Genres, t.Mood,
		t.PublishedYear, t.PageCount, t.Rating, t.ReviewCount, t.CreatedAt, t.UpdatedAt,
	}
}
