package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var assessmentColumns = []string{
	"id", "user_id", "assessment_id", "title", "status", "score", "max_score",
	"skill_scores", "chat_messages", "started_at", "completed_at",
}

type assessmentRepo struct {
	db querier
}

func (r *assessmentRepo) Record(ctx context.Context, rec AssessmentRecord) error {
	if rec.ID == "" || rec.UserID == "" || rec.AssessmentID == "" {
		return errors.New("record assessment: id, user id and assessment id are required")
	}
	if rec.Status == "" {
		rec.Status = StatusInProgress
	}

	var skillScores []byte
	if len(rec.SkillScores) > 0 {
		b, err := json.Marshal(rec.SkillScores)
		if err != nil {
			return fmt.Errorf("marshal skill scores: %w", err)
		}
		skillScores = b
	}

	var completedAt sql.NullTime
	if rec.CompletedAt != nil {
		completedAt = sql.NullTime{Time: rec.CompletedAt.UTC(), Valid: true}
	}

	query, args := builder().Insert(AssessmentsTable.Name).
		Columns(assessmentColumns...).
		Values(
			rec.ID, rec.UserID, rec.AssessmentID, rec.Title, string(rec.Status), rec.Score,
			rec.MaxScore, skillScores, rec.ChatMessages, rec.StartedAt.UTC(), completedAt,
		).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record assessment %s: %w", rec.ID, err)
	}
	return nil
}

func (r *assessmentRepo) List(ctx context.Context, userID string) ([]AssessmentRecord, error) {
	return r.query(ctx, builder().Select(assessmentColumns...).
		From(builder().Table(AssessmentsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("started_at"), entsql.Desc("rowid")))
}

func (r *assessmentRepo) RecentCompleted(ctx context.Context, userID string, limit int) ([]AssessmentRecord, error) {
	sel := builder().Select(assessmentColumns...).
		From(builder().Table(AssessmentsTable.Name)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("status", string(StatusCompleted)),
			entsql.NotNull("completed_at"),
		)).
		OrderBy(entsql.Desc("completed_at"), entsql.Desc("rowid"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	return r.query(ctx, sel)
}

func (r *assessmentRepo) Counts(ctx context.Context, userID string) (int, int, error) {
	total, err := countWhere(ctx, r.db, AssessmentsTable.Name, entsql.EQ("user_id", userID))
	if err != nil {
		return 0, 0, err
	}
	completed, err := countWhere(ctx, r.db, AssessmentsTable.Name, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("status", string(StatusCompleted)),
	))
	if err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (r *assessmentRepo) LatestCompleted(ctx context.Context, userID string) (map[string]AssessmentRecord, error) {
	recs, err := r.RecentCompleted(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]AssessmentRecord)
	for _, rec := range recs {
		// Newest first, so the first record seen per assessment wins.
		if _, seen := latest[rec.AssessmentID]; !seen {
			latest[rec.AssessmentID] = rec
		}
	}
	return latest, nil
}

func (r *assessmentRepo) query(ctx context.Context, sel *entsql.Selector) ([]AssessmentRecord, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var recs []AssessmentRecord
	for rows.Next() {
		var (
			rec         AssessmentRecord
			status      string
			skillScores []byte
			completedAt sql.NullTime
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.AssessmentID, &rec.Title, &status, &rec.Score,
			&rec.MaxScore, &skillScores, &rec.ChatMessages, &rec.StartedAt, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		rec.Status = AssessmentStatus(status)
		if len(skillScores) > 0 {
			if err := json.Unmarshal(skillScores, &rec.SkillScores); err != nil {
				return nil, fmt.Errorf("unmarshal skill scores of %s: %w", rec.ID, err)
			}
		}
		if completedAt.Valid {
			t := completedAt.Time
			rec.CompletedAt = &t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

