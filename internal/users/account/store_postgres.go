// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/core/discussion"
	"github.com/taibuivan/bookwise/internal/core/readinglist"
	"github.com/taibuivan/bookwise/internal/core/review"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
)

// PostgresActivityRepository implements ActivityRepository with the selects
// the owning domains export, so profile rows render exactly like list rows.
type PostgresActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a PostgreSQL [ActivityRepository].
func NewActivityRepository(pool *pgxpool.Pool) *PostgresActivityRepository {
	return &PostgresActivityRepository{pool: pool}
}

func (repository *PostgresActivityRepository) RecentReviews(context context.Context, userID string, limit int) ([]*review.Review, error) {
	rows, err := repository.pool.Query(context,
		review.ReviewSelect+` WHERE r.userid = $1 ORDER BY r.createdat DESC, r.id LIMIT $2`, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "profile_reviews")
	}
	defer rows.Close()

	reviews := []*review.Review{}
	for rows.Next() {
		entry, err := review.ScanReview(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_profile_review")
		}
		reviews = append(reviews, entry)
	}
	return reviews, dberr.Wrap(rows.Err(), "iterate_profile_reviews")
}

func (repository *PostgresActivityRepository) RecentDiscussions(context context.Context, userID string, limit int) ([]*discussion.Discussion, error) {
	rows, err := repository.pool.Query(context,
		discussion.DiscussionSelect+` WHERE d.userid = $1 ORDER BY d.createdat DESC, d.id LIMIT $2`, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "profile_discussions")
	}
	defer rows.Close()

	discussions := []*discussion.Discussion{}
	for rows.Next() {
		entry, err := discussion.ScanDiscussion(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_profile_discussion")
		}
		discussions = append(discussions, entry)
	}
	return discussions, dberr.Wrap(rows.Err(), "iterate_profile_discussions")
}

func (repository *PostgresActivityRepository) ReadingList(context context.Context, userID string) ([]*readinglist.Item, error) {
	rows, err := repository.pool.Query(context,
		readinglist.ItemSelect+` WHERE i.userid = $1 ORDER BY i.updatedat DESC, i.id`, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "profile_reading_list")
	}
	defer rows.Close()

	items := []*readinglist.Item{}
	for rows.Next() {
		entry, err := readinglist.ScanItem(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_profile_reading_list_item")
		}
		items = append(items, entry)
	}
	return items, dberr.Wrap(rows.Err(), "iterate_profile_reading_list")
}
