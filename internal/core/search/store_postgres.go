// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/core/discussion"
	"github.com/taibuivan/bookwise/internal/platform/database/schema"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
	"github.com/taibuivan/bookwise/internal/users/auth"
	"github.com/taibuivan/bookwise/pkg/query"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Books(context context.Context, term string, limit int) ([]*book.Book, error) {
	booksQuery := fmt.Sprintf(`
		SELECT %s FROM %s b
		WHERE b.%s ILIKE $1 OR b.%s ILIKE $1 OR b.%s ILIKE $1
		ORDER BY b.%s DESC, b.%s
		LIMIT $2`,
		schema.Select("b", schema.CatalogBook.Columns()), schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.Author, schema.CatalogBook.Description,
		schema.CatalogBook.Rating, schema.CatalogBook.Title,
	)

	rows, err := repository.pool.Query(context, booksQuery, query.Contains(term), limit)
	if err != nil {
		return nil, dberr.Wrap(err, "search_books")
	}
	defer rows.Close()

	books := []*book.Book{}
	for rows.Next() {
		match, err := book.ScanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book_match")
		}
		books = append(books, match)
	}
	return books, dberr.Wrap(rows.Err(), "iterate_book_matches")
}

func (repository *PostgresRepository) Discussions(context context.Context, term string, limit int) ([]*discussion.Discussion, error) {
	rows, err := repository.pool.Query(context,
		discussion.DiscussionSelect+` WHERE d.title ILIKE $1 OR d.content ILIKE $1 ORDER BY d.updatedat DESC, d.id LIMIT $2`,
		query.Contains(term), limit)
	if err != nil {
		return nil, dberr.Wrap(err, "search_discussions")
	}
	defer rows.Close()

	discussions := []*discussion.Discussion{}
	for rows.Next() {
		match, err := discussion.ScanDiscussion(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_discussion_match")
		}
		discussions = append(discussions, match)
	}
	return discussions, dberr.Wrap(rows.Err(), "iterate_discussion_matches")
}

func (repository *PostgresRepository) Users(context context.Context, term string, limit int) ([]*auth.Summary, error) {
	usersQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s
		WHERE %s ILIKE $1 OR %s ILIKE $1
		ORDER BY %s, %s
		LIMIT $2`,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Username, schema.UserAccount.Image,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.Username,
		schema.UserAccount.Name, schema.UserAccount.ID,
	)

	rows, err := repository.pool.Query(context, usersQuery, query.Contains(term), limit)
	if err != nil {
		return nil, dberr.Wrap(err, "search_users")
	}
	defer rows.Close()

	users := []*auth.Summary{}
	for rows.Next() {
		match := &auth.Summary{}
		if err := rows.Scan(&match.ID, &match.Name, &match.Username, &match.Image); err != nil {
			return nil, dberr.Wrap(err, "scan_user_match")
		}
		users = append(users, match)
	}
	return users, dberr.Wrap(rows.Err(), "iterate_user_matches")
}
