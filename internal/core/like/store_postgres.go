// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// targetTables maps a target kind onto its table, counter column and like column.
var targetTables = map[string]struct{ table, counter, column string }{
	KindReview:     {"social.review", "helpfulcount", "reviewid"},
	KindDiscussion: {"social.discussion", "likes", "discussionid"},
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Toggle flips the caller's like on target inside one transaction.

Description:
 1. Lock the target row (NotFound when missing).
 2. Delete the caller's like; when nothing was deleted, insert one.
 3. Move the target's counter by the same amount and return it.
*/
func (repository *PostgresRepository) Toggle(context context.Context, userID string, target Target) (bool, int, error) {
	mapping, ok := targetTables[target.Kind]
	if !ok {
		return false, 0, apperr.Internal(fmt.Errorf("like: unknown target kind %q", target.Kind))
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return false, 0, dberr.Wrap(err, "begin_toggle_like_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Lock the target
	var count int
	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, mapping.counter, mapping.table)
	if err := transaction.QueryRow(context, lockQuery, target.ID).Scan(&count); err != nil {
		return false, 0, dberr.WrapAs(err, targetName(target.Kind), "lock_like_target")
	}

	// Step 2: Remove an existing like, or add one
	deleteQuery := fmt.Sprintf(`DELETE FROM social.userlike WHERE userid = $1 AND %s = $2`, mapping.column)
	result, err := transaction.Exec(context, deleteQuery, userID, target.ID)
	if err != nil {
		return false, 0, dberr.Wrap(err, "delete_like")
	}

	liked := result.RowsAffected() == 0
	delta := -1
	if liked {
		insertQuery := fmt.Sprintf(`INSERT INTO social.userlike (id, userid, %s) VALUES ($1, $2, $3)`, mapping.column)
		if _, err := transaction.Exec(context, insertQuery, uuid.New(), userID, target.ID); err != nil {
			return false, 0, dberr.Wrap(err, "insert_like")
		}
		delta = 1
	}

	// Step 3: Counter
	counterQuery := fmt.Sprintf(`UPDATE %s SET %s = GREATEST(0, %s + $2) WHERE id = $1 RETURNING %s`,
		mapping.table, mapping.counter, mapping.counter, mapping.counter)
	if err := transaction.QueryRow(context, counterQuery, target.ID, delta).Scan(&count); err != nil {
		return false, 0, dberr.Wrap(err, "adjust_like_counter")
	}

	if err := transaction.Commit(context); err != nil {
		return false, 0, dberr.Wrap(err, "commit_toggle_like")
	}
	return liked, count, nil
}
