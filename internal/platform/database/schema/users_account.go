// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table              string
	ID                 string
	Email              string
	Password           string
	Name               string
	Username           string
	Bio                string
	Image              string
	Website            string
	GoodreadsURL       string
	TwitterURL         string
	FavoriteGenres     string
	ReadingGoal        string
	IsAdmin            string
	BooksRead          string
	ReviewsWritten     string
	DiscussionsStarted string
	CreatedAt          string
	UpdatedAt          string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:              "users.account",
	ID:                 "id",
	Email:              "email",
	Password:           "passwordhash",
	Name:               "name",
	Username:           "username",
	Bio:                "bio",
	Image:              "image",
	Website:            "website",
	GoodreadsURL:       "goodreadsurl",
	TwitterURL:         "twitterurl",
	FavoriteGenres:     "favoritegenres",
	ReadingGoal:        "readinggoal",
	IsAdmin:            "isadmin",
	BooksRead:          "booksread",
	ReviewsWritten:     "reviewswritten",
	DiscussionsStarted: "discussionsstarted",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

// Columns returns the public profile columns in scan order. The password
// hash is excluded and selected explicitly where it is needed.
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Name, t.Username, t.Bio, t.Image, t.Website,
		t.GoodreadsURL, t.TwitterURL, t.FavoriteGenres, t.ReadingGoal, t.IsAdmin,
		t.BooksRead, t.ReviewsWritten, t.DiscussionsStarted, t.CreatedAt, t.UpdatedAt,
	}
}
