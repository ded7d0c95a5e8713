// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package readinglist

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
)

const constraintUserBook = "readinglistitem_userid_bookid_key"

// ItemSelect hydrates an item with its book summary.
const ItemSelect = `
	SELECT i.id, i.userid, i.bookid, i.status, i.progress, i.startedat, i.finishedat, i.createdat, i.updatedat,
	       b.id, b.title, b.author, b.coverimage
	FROM library.readinglistitem i
	JOIN catalog.book b ON b.id = i.bookid`

// adjustBooksRead applies a signed delta without going below zero.
const adjustBooksRead = `UPDATE users.account SET booksread = GREATEST(0, booksread + $2) WHERE id = $1`

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ScanItem reads a row selected with [ItemSelect].
func ScanItem(row pgx.Row) (*Item, error) {
	item := &Item{}
	err := row.Scan(
		&item.ID, &item.UserID, &item.BookID, &item.Status, &item.Progress, &item.StartedAt, &item.FinishedAt,
		&item.CreatedAt, &item.UpdatedAt,
		&item.Book.ID, &item.Book.Title, &item.Book.Author, &item.Book.CoverImage,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (repository *PostgresRepository) List(context context.Context, userID, status string, limit, offset int) ([]*Item, int, error) {
	const where = ` WHERE i.userid = $1 AND ($2 = '' OR i.status = $2)`

	var total int
	if err := repository.pool.QueryRow(context,
		`SELECT count(*) FROM library.readinglistitem i`+where, userID, status).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reading_list")
	}

	rows, err := repository.pool.Query(context,
		ItemSelect+where+` ORDER BY i.updatedat DESC, i.id LIMIT $3 OFFSET $4`, userID, status, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reading_list")
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		item, err := ScanItem(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_reading_list_item")
		}
		items = append(items, item)
	}

	return items, total, dberr.Wrap(rows.Err(), "iterate_reading_list")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Item, error) {
	item, err := ScanItem(repository.pool.QueryRow(context, ItemSelect+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "Reading list item", "get_reading_list_item")
	}
	return item, nil
}

func (repository *PostgresRepository) Exists(context context.Context, userID, bookID string) (bool, error) {
	var exists bool
	err := repository.pool.QueryRow(context,
		`SELECT EXISTS (SELECT 1 FROM library.readinglistitem WHERE userid = $1 AND bookid = $2)`, userID, bookID,
	).Scan(&exists)
	return exists, dberr.Wrap(err, "reading_list_item_exists")
}

/*
Create inserts the item and counts it in booksRead in one transaction.
*/
func (repository *PostgresRepository) Create(context context.Context, item *Item) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_reading_list_tx")
	}
	defer transaction.Rollback(context)

	err = transaction.QueryRow(context, `
		INSERT INTO library.readinglistitem (id, userid, bookid, status, progress, startedat, finishedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING createdat, updatedat`,
		item.ID, item.UserID, item.BookID, item.Status, item.Progress, item.StartedAt, item.FinishedAt,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if dberr.IsUniqueViolation(err, constraintUserBook) {
		return apperr.Conflict("This book is already in your reading list")
	}
	if err != nil {
		return dberr.Wrap(err, "insert_reading_list_item")
	}

	if readDelta := ReadDelta("", item.Status); readDelta != 0 {
		if _, err := transaction.Exec(context, adjustBooksRead, item.UserID, readDelta); err != nil {
			return dberr.Wrap(err, "adjust_books_read")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_reading_list_item")
}

/*
Update locks the row, checks it still holds readStatus, writes the item and
moves booksRead by ReadDelta(readStatus, item.Status) in one transaction.
*/
func (repository *PostgresRepository) Update(context context.Context, item *Item, readStatus string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_reading_list_tx")
	}
	defer transaction.Rollback(context)

	var stored string
	err = transaction.QueryRow(context,
		`SELECT status FROM library.readinglistitem WHERE id = $1 FOR UPDATE`, item.ID,
	).Scan(&stored)
	if err != nil {
		return dberr.WrapAs(err, "Reading list item", "lock_reading_list_item")
	}
	if stored != readStatus {
		return ErrStatusChanged
	}

	err = transaction.QueryRow(context, `
		UPDATE library.readinglistitem
		SET status = $2, progress = $3, startedat = $4, finishedat = $5, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat`,
		item.ID, item.Status, item.Progress, item.StartedAt, item.FinishedAt,
	).Scan(&item.UpdatedAt)
	if err != nil {
		return dberr.WrapAs(err, "Reading list item", "update_reading_list_item")
	}

	if readDelta := ReadDelta(readStatus, item.Status); readDelta != 0 {
		if _, err := transaction.Exec(context, adjustBooksRead, item.UserID, readDelta); err != nil {
			return dberr.Wrap(err, "adjust_books_read")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_update_reading_list_item")
}

/*
Delete removes the item and uncounts it in one transaction. The status comes
from the deleted row itself, so a concurrent status change cannot skew it.
*/
func (repository *PostgresRepository) Delete(context context.Context, item *Item) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_reading_list_tx")
	}
	defer transaction.Rollback(context)

	var deletedStatus string
	err = transaction.QueryRow(context,
		`DELETE FROM library.readinglistitem WHERE id = $1 RETURNING status`, item.ID,
	).Scan(&deletedStatus)
	if err != nil {
		return dberr.WrapAs(err, "Reading list item", "delete_reading_list_item")
	}

	if readDelta := ReadDelta(deletedStatus, ""); readDelta != 0 {
		if _, err := transaction.Exec(context, adjustBooksRead, item.UserID, readDelta); err != nil {
			return dberr.Wrap(err, "adjust_books_read")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_reading_list_item")
}
