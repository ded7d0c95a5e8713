// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
	"github.com/taibuivan/bookwise/pkg/query"
)

// DiscussionSelect hydrates a thread with author, optional book and comment count.
const DiscussionSelect = `
	SELECT d.id, d.userid, d.bookid, d.title, d.content, d.category, d.views, d.likes, d.ispinned,
	       d.createdat, d.updatedat,
	       (SELECT count(*) FROM social.comment c WHERE c.discussionid = d.id),
	       u.id, u.name, u.username, u.image,
	       b.id, b.title, b.author, b.coverimage
	FROM social.discussion d
	JOIN users.account u ON u.id = d.userid
	LEFT JOIN catalog.book b ON b.id = d.bookid`

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ScanDiscussion reads a row selected with [DiscussionSelect].
func ScanDiscussion(row pgx.Row) (*Discussion, error) {
	discussion := &Discussion{}
	var bookID, bookTitle, bookAuthor, bookCover *string

	err := row.Scan(
		&discussion.ID, &discussion.UserID, &discussion.BookID, &discussion.Title, &discussion.Content,
		&discussion.Category, &discussion.Views, &discussion.Likes, &discussion.IsPinned,
		&discussion.CreatedAt, &discussion.UpdatedAt, &discussion.CommentCount,
		&discussion.User.ID, &discussion.User.Name, &discussion.User.Username, &discussion.User.Image,
		&bookID, &bookTitle, &bookAuthor, &bookCover,
	)
	if err != nil {
		return nil, err
	}

	if bookID != nil {
		discussion.Book = &book.Summary{ID: *bookID, Title: *bookTitle, Author: *bookAuthor, CoverImage: *bookCover}
	}
	return discussion, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Discussion, int, error) {
	var conditions []string
	var args []any
	bind := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Category != "" {
		conditions = append(conditions, "d.category = "+bind(filter.Category))
	}
	if filter.BookID != "" {
		conditions = append(conditions, "d.bookid = "+bind(filter.BookID))
	}
	if filter.UserID != "" {
		conditions = append(conditions, "d.userid = "+bind(filter.UserID))
	}
	if filter.Search != "" {
		pattern := bind(query.Contains(filter.Search))
		conditions = append(conditions, "(d.title ILIKE "+pattern+" OR d.content ILIKE "+pattern+")")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := repository.pool.QueryRow(context, `SELECT count(*) FROM social.discussion d`+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_discussions")
	}

	listQuery := DiscussionSelect + where +
		" ORDER BY d.ispinned DESC, d.updatedat DESC, d.id LIMIT " + bind(limit) + " OFFSET " + bind(offset)

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_discussions")
	}
	defer rows.Close()

	discussions := []*Discussion{}
	for rows.Next() {
		discussion, err := ScanDiscussion(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_discussion")
		}
		discussions = append(discussions, discussion)
	}

	return discussions, total, dberr.Wrap(rows.Err(), "iterate_discussions")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Discussion, error) {
	discussion, err := ScanDiscussion(repository.pool.QueryRow(context, DiscussionSelect+" WHERE d.id = $1", id))
	if err != nil {
		return nil, dberr.WrapAs(err, "Discussion", "get_discussion")
	}
	return discussion, nil
}

func (repository *PostgresRepository) Comments(context context.Context, discussionID string) ([]*Comment, error) {
	rows, err := repository.pool.Query(context, `
		SELECT c.id, c.parentid, c.content, c.createdat, c.updatedat, u.id, u.name, u.username, u.image
		FROM social.comment c
		JOIN users.account u ON u.id = c.userid
		WHERE c.discussionid = $1
		ORDER BY c.createdat, c.id`, discussionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_thread_comments")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.ParentID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
			&comment.User.ID, &comment.User.Name, &comment.User.Username, &comment.User.Image,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_thread_comment")
		}
		comments = append(comments, comment)
	}

	return comments, dberr.Wrap(rows.Err(), "iterate_thread_comments")
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	result, err := repository.pool.Exec(context, `UPDATE social.discussion SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "increment_views")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Discussion")
	}
	return nil
}

/*
Create inserts the thread and bumps the author's discussionsStarted in one transaction.
*/
func (repository *PostgresRepository) Create(context context.Context, discussion *Discussion) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_discussion_tx")
	}
	defer transaction.Rollback(context)

	err = transaction.QueryRow(context, `
		INSERT INTO social.discussion (id, userid, bookid, title, content, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING createdat, updatedat`,
		discussion.ID, discussion.UserID, discussion.BookID, discussion.Title, discussion.Content, discussion.Category,
	).Scan(&discussion.CreatedAt, &discussion.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_discussion")
	}

	if _, err := transaction.Exec(context,
		`UPDATE users.account SET discussionsstarted = discussionsstarted + 1 WHERE id = $1`, discussion.UserID); err != nil {
		return dberr.Wrap(err, "increment_discussions_started")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_discussion")
}

func (repository *PostgresRepository) Update(context context.Context, discussion *Discussion) error {
	err := repository.pool.QueryRow(context, `
		UPDATE social.discussion
		SET title = $2, content = $3, category = $4, bookid = $5, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat`,
		discussion.ID, discussion.Title, discussion.Content, discussion.Category, discussion.BookID,
	).Scan(&discussion.UpdatedAt)
	return dberr.WrapAs(err, "Discussion", "update_discussion")
}

func (repository *PostgresRepository) SetPinned(context context.Context, id string, pinned bool) error {
	result, err := repository.pool.Exec(context, `UPDATE social.discussion SET ispinned = $2 WHERE id = $1`, id, pinned)
	if err != nil {
		return dberr.Wrap(err, "pin_discussion")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Discussion")
	}
	return nil
}

/*
Delete removes the thread and decrements the owner's discussionsStarted in one
transaction. Comments and likes go through ON DELETE CASCADE.
*/
func (repository *PostgresRepository) Delete(context context.Context, discussion *Discussion) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_discussion_tx")
	}
	defer transaction.Rollback(context)

	result, err := transaction.Exec(context, `DELETE FROM social.discussion WHERE id = $1`, discussion.ID)
	if err != nil {
		return dberr.Wrap(err, "delete_discussion")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Discussion")
	}

	if _, err := transaction.Exec(context,
		`UPDATE users.account SET discussionsstarted = GREATEST(0, discussionsstarted - 1) WHERE id = $1`, discussion.UserID); err != nil {
		return dberr.Wrap(err, "decrement_discussions_started")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_discussion")
}
