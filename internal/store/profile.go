package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var profileColumns = []string{
	"user_id", "email", "full_name", "bio", "location", "company", "job_title",
	"website_url", "github_url", "linkedin_url", "avatar_url", "created_at", "updated_at",
}

type profileRepo struct {
	db querier
}

func (r *profileRepo) Get(ctx context.Context, userID string) (*Profile, error) {
	query, args := builder().Select(profileColumns...).
		From(builder().Table(ProfilesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var p Profile
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.UserID, &p.Email, &p.FullName, &p.Bio, &p.Location, &p.Company, &p.JobTitle,
		&p.WebsiteURL, &p.GitHubURL, &p.LinkedInURL, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p *Profile) error {
	if p.UserID == "" {
		return errors.New("upsert profile: empty user id")
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query, args := builder().Insert(ProfilesTable.Name).
		Columns(profileColumns...).
		Values(
			p.UserID, p.Email, p.FullName, p.Bio, p.Location, p.Company, p.JobTitle,
			p.WebsiteURL, p.GitHubURL, p.LinkedInURL, p.AvatarURL, p.CreatedAt.UTC(), p.UpdatedAt,
		).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				// created_at keeps the value from the first insert.
				for _, c := range profileColumns[1 : len(profileColumns)-2] {
					u.SetExcluded(c)
				}
				u.SetExcluded("updated_at")
			}),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
