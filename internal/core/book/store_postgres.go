// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/database/schema"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
	"github.com/taibuivan/bookwise/pkg/query"
)

// sortColumns maps client sort keys onto catalog.book columns.
var sortColumns = map[string]string{
	"createdAt":     "b." + schema.CatalogBook.CreatedAt,
	"rating":        "b." + schema.CatalogBook.Rating,
	"title":         "b." + schema.CatalogBook.Title,
	"publishedYear": "b." + schema.CatalogBook.PublishedYear,
	"reviewCount":   "b." + schema.CatalogBook.ReviewCount,
}

var bookColumns = schema.Select("b", schema.CatalogBook.Columns())

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ScanBook reads a row selected with schema.CatalogBook.Columns().
func ScanBook(row pgx.Row) (*Book, error) {
	book := &Book{}
	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Description, &book.CoverImage,
		&book.Genres, &book.Mood, &book.PublishedYear, &book.PageCount, &book.Rating,
		&book.ReviewCount, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	var conditions []string
	var args []any
	bind := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if len(filter.Genres) > 0 {
		conditions = append(conditions, fmt.Sprintf("b.%s @> %s::text[]", schema.CatalogBook.Genres, bind(filter.Genres)))
	}
	if filter.Search != "" {
		pattern := bind(query.Contains(filter.Search))
		conditions = append(conditions, fmt.Sprintf("(b.%s ILIKE %s OR b.%s ILIKE %s)",
			schema.CatalogBook.Title, pattern, schema.CatalogBook.Author, pattern))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s b %s`, schema.CatalogBook.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	orderBy := query.Sort(filter.SortBy, sortColumns, sortColumns["createdAt"])
	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s b %s
		ORDER BY %s %s, b.%s
		LIMIT %s OFFSET %s`,
		bookColumns, schema.CatalogBook.Table, where,
		orderBy, query.Order(filter.Order), schema.CatalogBook.ID,
		bind(limit), bind(offset),
	)

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := ScanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	return books, total, dberr.Wrap(rows.Err(), "iterate_books")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s b WHERE b.%s = $1`,
		bookColumns, schema.CatalogBook.Table, schema.CatalogBook.ID)

	book, err := ScanBook(repository.pool.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "Book", "get_book")
	}
	return book, nil
}

func (repository *PostgresRepository) Reviews(context context.Context, bookID string) ([]*Review, error) {
	const reviewsQuery = `
		SELECT r.id, r.rating, r.title, r.content, r.pros, r.cons, r.helpfulcount, r.createdat, r.updatedat,
		       u.id, u.name, u.username, u.image,
		       (SELECT count(*) FROM social.userlike l WHERE l.reviewid = r.id)
		FROM social.review r
		JOIN users.account u ON u.id = r.userid
		WHERE r.bookid = $1
		ORDER BY r.createdat DESC, r.id`

	rows, err := repository.pool.Query(context, reviewsQuery, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_reviews")
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		review := &Review{}
		if err := rows.Scan(
			&review.ID, &review.Rating, &review.Title, &review.Content, &review.Pros, &review.Cons,
			&review.HelpfulCount, &review.CreatedAt, &review.UpdatedAt,
			&review.User.ID, &review.User.Name, &review.User.Username, &review.User.Image,
			&review.LikeCount,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_book_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, dberr.Wrap(rows.Err(), "iterate_book_reviews")
}

func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	createQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s, %s, %s`,
		schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Author, schema.CatalogBook.ISBN,
		schema.CatalogBook.Description, schema.CatalogBook.CoverImage, schema.CatalogBook.Genres,
		schema.CatalogBook.Mood, schema.CatalogBook.PublishedYear, schema.CatalogBook.PageCount,
		schema.CatalogBook.Rating, schema.CatalogBook.ReviewCount, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, createQuery,
		book.ID, book.Title, book.Author, book.ISBN, book.Description, book.CoverImage,
		book.Genres, book.Mood, book.PublishedYear, book.PageCount,
	).Scan(&book.Rating, &book.ReviewCount, &book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) Update(context context.Context, book *Book) error {
	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.Author, schema.CatalogBook.ISBN, schema.CatalogBook.Description,
		schema.CatalogBook.CoverImage, schema.CatalogBook.Genres, schema.CatalogBook.Mood,
		schema.CatalogBook.PublishedYear, schema.CatalogBook.PageCount, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID,
		schema.CatalogBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, updateQuery,
		book.ID, book.Title, book.Author, book.ISBN, book.Description, book.CoverImage,
		book.Genres, book.Mood, book.PublishedYear, book.PageCount,
	).Scan(&book.UpdatedAt)

	return dberr.WrapAs(err, "Book", "update_book")
}

/*
Delete removes the book and settles the counters its rows fed.

Description: Reviews and reading-list rows disappear through ON DELETE
CASCADE, so the counters are decremented first, inside the same transaction.
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_book_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Reviewers lose the review they wrote
	if _, err := transaction.Exec(context, `
		UPDATE users.account
		SET reviewswritten = GREATEST(0, reviewswritten - 1)
		WHERE id IN (SELECT userid FROM social.review WHERE bookid = $1)`, id); err != nil {
		return dberr.Wrap(err, "decrement_reviews_written")
	}

	// Step 2: Readers who finished it lose a read book
	if _, err := transaction.Exec(context, `
		UPDATE users.account
		SET booksread = GREATEST(0, booksread - 1)
		WHERE id IN (SELECT userid FROM library.readinglistitem WHERE bookid = $1 AND status = 'read')`, id); err != nil {
		return dberr.Wrap(err, "decrement_books_read")
	}

	// Step 3: The book itself
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)
	result, err := transaction.Exec(context, deleteQuery, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return transaction.Commit(context)
}
