// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
)

// constraintUserBook is the one-review-per-book unique index.
const constraintUserBook = "review_userid_bookid_key"

// ReviewSelect hydrates a review with its author and book summaries.
const ReviewSelect = `
	SELECT r.id, r.userid, r.bookid, r.rating, r.title, r.content, r.pros, r.cons,
	       r.helpfulcount, r.createdat, r.updatedat,
	       u.id, u.name, u.username, u.image,
	       b.id, b.title, b.author, b.coverimage
	FROM social.review r
	JOIN users.account u ON u.id = r.userid
	JOIN catalog.book b ON b.id = r.bookid`

// refreshBookRating recomputes the stored rating from live reviews. Books left
// without reviews keep their previous rating.
const refreshBookRating = `
	UPDATE catalog.book
	SET reviewcount = GREATEST(0, reviewcount + $2),
	    rating = COALESCE(
	        (SELECT round(avg(rating)::numeric, 1)::float8 FROM social.review WHERE bookid = $1),
	        rating)
	WHERE id = $1`

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ScanReview reads a row selected with [ReviewSelect].
func ScanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID, &review.UserID, &review.BookID, &review.Rating, &review.Title, &review.Content,
		&review.Pros, &review.Cons, &review.HelpfulCount, &review.CreatedAt, &review.UpdatedAt,
		&review.User.ID, &review.User.Name, &review.User.Username, &review.User.Image,
		&review.Book.ID, &review.Book.Title, &review.Book.Author, &review.Book.CoverImage,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	var conditions []string
	var args []any
	bind := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.BookID != "" {
		conditions = append(conditions, "r.bookid = "+bind(filter.BookID))
	}
	if filter.UserID != "" {
		conditions = append(conditions, "r.userid = "+bind(filter.UserID))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := repository.pool.QueryRow(context, `SELECT count(*) FROM social.review r`+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	listQuery := ReviewSelect + where +
		" ORDER BY r.createdat DESC, r.id LIMIT " + bind(limit) + " OFFSET " + bind(offset)

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		review, err := ScanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, dberr.Wrap(rows.Err(), "iterate_reviews")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Review, error) {
	review, err := ScanReview(repository.pool.QueryRow(context, ReviewSelect+" WHERE r.id = $1", id))
	if err != nil {
		return nil, dberr.WrapAs(err, "Review", "get_review")
	}
	return review, nil
}

func (repository *PostgresRepository) Exists(context context.Context, userID, bookID string) (bool, error) {
	var exists bool
	err := repository.pool.QueryRow(context,
		`SELECT EXISTS (SELECT 1 FROM social.review WHERE userid = $1 AND bookid = $2)`, userID, bookID,
	).Scan(&exists)
	return exists, dberr.Wrap(err, "review_exists")
}

/*
Create inserts the review and applies its counter contributions.

Description: Runs inside a single transaction:
 1. Insert the review row.
 2. Book: reviewCount +1 and rating recomputed.
 3. Author: reviewsWritten +1.
*/
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_review_tx")
	}
	defer transaction.Rollback(context)

	err = transaction.QueryRow(context, `
		INSERT INTO social.review (id, userid, bookid, rating, title, content, pros, cons)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING helpfulcount, createdat, updatedat`,
		review.ID, review.UserID, review.BookID, review.Rating, review.Title, review.Content, review.Pros, review.Cons,
	).Scan(&review.HelpfulCount, &review.CreatedAt, &review.UpdatedAt)
	if dberr.IsUniqueViolation(err, constraintUserBook) {
		return apperr.Conflict("You have already reviewed this book")
	}
	if err != nil {
		return dberr.Wrap(err, "insert_review")
	}

	if _, err := transaction.Exec(context, refreshBookRating, review.BookID, 1); err != nil {
		return dberr.Wrap(err, "increment_book_reviews")
	}

	if _, err := transaction.Exec(context,
		`UPDATE users.account SET reviewswritten = reviewswritten + 1 WHERE id = $1`, review.UserID); err != nil {
		return dberr.Wrap(err, "increment_reviews_written")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_review")
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_review_tx")
	}
	defer transaction.Rollback(context)

	err = transaction.QueryRow(context, `
		UPDATE social.review
		SET rating = $2, title = $3, content = $4, pros = $5, cons = $6, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat`,
		review.ID, review.Rating, review.Title, review.Content, review.Pros, review.Cons,
	).Scan(&review.UpdatedAt)
	if err != nil {
		return dberr.WrapAs(err, "Review", "update_review")
	}

	if _, err := transaction.Exec(context, refreshBookRating, review.BookID, 0); err != nil {
		return dberr.Wrap(err, "refresh_book_rating")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_update_review")
}

/*
Delete removes the review and reverses Create's counter contributions in one
transaction. Likes on the review disappear through ON DELETE CASCADE.
*/
func (repository *PostgresRepository) Delete(context context.Context, review *Review) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_review_tx")
	}
	defer transaction.Rollback(context)

	result, err := transaction.Exec(context, `DELETE FROM social.review WHERE id = $1`, review.ID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	if _, err := transaction.Exec(context, refreshBookRating, review.BookID, -1); err != nil {
		return dberr.Wrap(err, "decrement_book_reviews")
	}

	if _, err := transaction.Exec(context,
		`UPDATE users.account SET reviewswritten = GREATEST(0, reviewswritten - 1) WHERE id = $1`, review.UserID); err != nil {
		return dberr.Wrap(err, "decrement_reviews_written")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_review")
}
