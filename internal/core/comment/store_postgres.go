// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
)

const commentSelect = `
	SELECT c.id, c.discussionid, c.userid, c.parentid, c.content, c.createdat, c.updatedat,
	       u.id, u.name, u.username, u.image
	FROM social.comment c
	JOIN users.account u ON u.id = c.userid`

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.DiscussionID, &comment.UserID, &comment.ParentID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
		&comment.User.ID, &comment.User.Name, &comment.User.Username, &comment.User.Image,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *PostgresRepository) List(context context.Context, discussionID string, limit, offset int) ([]*Comment, int, error) {
	var total int
	if err := repository.pool.QueryRow(context,
		`SELECT count(*) FROM social.comment WHERE discussionid = $1`, discussionID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	rows, err := repository.pool.Query(context,
		commentSelect+` WHERE c.discussionid = $1 ORDER BY c.createdat, c.id LIMIT $2 OFFSET $3`,
		discussionID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, dberr.Wrap(rows.Err(), "iterate_comments")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	comment, err := scanComment(repository.pool.QueryRow(context, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "Comment", "get_comment")
	}
	return comment, nil
}

/*
Create inserts the comment and touches the discussion in one transaction.
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_comment_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Touch the thread first so a deleted thread stops the insert
	result, err := transaction.Exec(context, `UPDATE social.discussion SET updatedat = NOW() WHERE id = $1`, comment.DiscussionID)
	if err != nil {
		return dberr.Wrap(err, "touch_discussion")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Discussion")
	}

	// Step 2: The comment itself
	err = transaction.QueryRow(context, `
		INSERT INTO social.comment (id, discussionid, userid, parentid, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING createdat, updatedat`,
		comment.ID, comment.DiscussionID, comment.UserID, comment.ParentID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_comment")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_comment")
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	err := repository.pool.QueryRow(context,
		`UPDATE social.comment SET content = $2, updatedat = NOW() WHERE id = $1 RETURNING updatedat`,
		comment.ID, comment.Content,
	).Scan(&comment.UpdatedAt)
	return dberr.WrapAs(err, "Comment", "update_comment")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	result, err := repository.pool.Exec(context, `DELETE FROM social.comment WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
