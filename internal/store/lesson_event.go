package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type lessonCompletionRow struct {
	ID          int    `db:"id"`
	Sequence    int64  `db:"sequence"`
	CreatedAt   int64  `db:"created_at"`
	SessionID   string `db:"session_id"`
	LessonID    string `db:"lesson_id"`
	LessonTitle string `db:"lesson_title"`
	Score       int    `db:"score"`
	Correct     int    `db:"correct"`
	Total       int    `db:"total"`
}

func (r *eventRepo) AppendLessonCompletion(ctx context.Context, data LessonCompletionData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	row := lessonCompletionRow{
		Sequence:    seqNum,
		CreatedAt:   time.Now().UnixMilli(),
		SessionID:   data.SessionID,
		LessonID:    data.LessonID,
		LessonTitle: data.LessonTitle,
		Score:       data.Score,
		Correct:     data.Correct,
		Total:       data.Total,
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO lesson_completions
		(sequence, created_at, session_id, lesson_id, lesson_title, score, correct, total)
		VALUES
		(:sequence, :created_at, :session_id, :lesson_id, :lesson_title, :score, :correct, :total)`, row)
	if err != nil {
		return fmt.Errorf("save lesson completion: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLessonCompletions(ctx context.Context, opts QueryOpts) ([]LessonCompletionRecord, error) {
	conds, args := appendTimeRange(nil, nil, opts)

	query := `SELECT * FROM lesson_completions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY sequence DESC" + limitClause(opts)

	var rows []lessonCompletionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query lesson completions: %w", err)
	}

	out := make([]LessonCompletionRecord, len(rows))
	for i, row := range rows {
		out[i] = LessonCompletionRecord{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: time.UnixMilli(row.CreatedAt).UTC(),
			LessonCompletionData: LessonCompletionData{
				SessionID:   row.SessionID,
				LessonID:    row.LessonID,
				LessonTitle: row.LessonTitle,
				Score:       row.Score,
				Correct:     row.Correct,
				Total:       row.Total,
			},
		}
	}
	return out, nil
}
