// Package profile edits the learner's profile and skill list.
package profile

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/store"
)

var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrDuplicateSkill = errors.New("skill already on profile")
	ErrSkillNotFound  = errors.New("skill not on profile")
	ErrEmptySkill     = errors.New("skill name is empty")
	ErrUnknownField   = errors.New("unknown profile field")
)

// Field names one editable profile attribute.
type Field struct {
	Key   string
	Label string
	get   func(*store.Profile) *string
	url   bool
}

// Fields lists the editable attributes in display order.
var Fields = []Field{
	{Key: "email", Label: "Email", get: func(p *store.Profile) *string { return &p.Email }},
	{Key: "full_name", Label: "Full name", get: func(p *store.Profile) *string { return &p.FullName }},
	{Key: "bio", Label: "Bio", get: func(p *store.Profile) *string { return &p.Bio }},
	{Key: "location", Label: "Location", get: func(p *store.Profile) *string { return &p.Location }},
	{Key: "company", Label: "Company", get: func(p *store.Profile) *string { return &p.Company }},
	{Key: "job_title", Label: "Job title", get: func(p *store.Profile) *string { return &p.JobTitle }},
	{Key: "website_url", Label: "Website", get: func(p *store.Profile) *string { return &p.WebsiteURL }, url: true},
	{Key: "github_url", Label: "GitHub", get: func(p *store.Profile) *string { return &p.GitHubURL }, url: true},
	{Key: "linkedin_url", Label: "LinkedIn", get: func(p *store.Profile) *string { return &p.LinkedInURL }, url: true},
	{Key: "avatar_url", Label: "Avatar", get: func(p *store.Profile) *string { return &p.AvatarURL }, url: true},
}

// Value returns the field's current value in p.
func (f Field) Value(p *store.Profile) string {
	return *f.get(p)
}

// LookupField finds a field by key.
func LookupField(key string) (Field, error) {
	for _, f := range Fields {
		if f.Key == key {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// SetField assigns a trimmed value to the named field without validating it.
func SetField(p *store.Profile, key, value string) error {
	f, err := LookupField(key)
	if err != nil {
		return err
	}
	*f.get(p) = strings.TrimSpace(value)
	return nil
}

// Validate checks every field and reports all problems at once.
func Validate(p *store.Profile) error {
	var errs []error
	if p.Email != "" && !validEmail(p.Email) {
		errs = append(errs, fmt.Errorf("email %q is not a valid address", p.Email))
	}
	for _, f := range Fields {
		if !f.url {
			continue
		}
		if v := f.Value(p); v != "" && !validURL(v) {
			errs = append(errs, fmt.Errorf("%s %q must be an http(s) URL", f.Label, v))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(errs...))
	}
	return nil
}

func validEmail(s string) bool {
	local, domain, ok := strings.Cut(s, "@")
	return ok && local != "" && domain != "" && !strings.Contains(domain, "@") && !strings.ContainsAny(s, " \t")
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Service loads and saves the profile of one user.
type Service struct {
	profiles store.ProfileRepo
	skills   store.SkillRepo
	activity store.ActivityRepo
	logger   *zap.Logger
}

// NewService creates a profile service.
func NewService(profiles store.ProfileRepo, skills store.SkillRepo, activity store.ActivityRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{profiles: profiles, skills: skills, activity: activity, logger: logger}
}

// Load returns the stored profile, or an empty one for userID.
func (s *Service) Load(ctx context.Context, userID string) (*store.Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &store.Profile{UserID: userID}
	}
	return p, nil
}

// Seed stores email and name as the initial profile when none exists yet.
func (s *Service) Seed(ctx context.Context, userID, email, name string) error {
	if email == "" && name == "" {
		return nil
	}
	existing, err := s.profiles.Get(ctx, userID)
	if err != nil || existing != nil {
		return err
	}
	p := &store.Profile{UserID: userID, Email: strings.TrimSpace(email), FullName: strings.TrimSpace(name)}
	if err := Validate(p); err != nil {
		return err
	}
	return s.profiles.Upsert(ctx, p)
}

// Save validates and stores p, recording a profile_updated activity.
func (s *Service) Save(ctx context.Context, p *store.Profile) error {
	for _, f := range Fields {
		*f.get(p) = strings.TrimSpace(f.Value(p))
	}
	if err := Validate(p); err != nil {
		return err
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return err
	}
	s.logger.Info("profile saved", zap.String("user_id", p.UserID))
	s.record(ctx, p.UserID, store.ActivityProfileUpdated, "Updated profile", "")
	return nil
}

// Skills lists the user's skills.
func (s *Service) Skills(ctx context.Context, userID string) ([]store.UserSkill, error) {
	return s.skills.List(ctx, userID)
}

// AddSkill adds a hand-entered skill. Names compare case-insensitively.
func (s *Service) AddSkill(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptySkill
	}
	existing, err := s.skills.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, sk := range existing {
		if strings.EqualFold(sk.Name, name) {
			return fmt.Errorf("%w: %s", ErrDuplicateSkill, sk.Name)
		}
	}
	if err := s.skills.Upsert(ctx, store.UserSkill{UserID: userID, Name: name, Source: store.SkillSourceProfile}); err != nil {
		return err
	}
	s.record(ctx, userID, store.ActivitySkillAdded, "Added skill "+name, "")
	return nil
}

// RemoveSkill deletes a skill, matching its name case-insensitively.
func (s *Service) RemoveSkill(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	existing, err := s.skills.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, sk := range existing {
		if strings.EqualFold(sk.Name, name) {
			if err := s.skills.Delete(ctx, userID, sk.Name); err != nil {
				return err
			}
			s.record(ctx, userID, store.ActivitySkillRemoved, "Removed skill "+sk.Name, "")
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSkillNotFound, name)
}

// record appends an activity entry. Failures are logged, not returned.
func (s *Service) record(ctx context.Context, userID, kind, title, detail string) {
	if _, err := s.activity.Append(ctx, store.Activity{UserID: userID, Kind: kind, Title: title, Detail: detail}); err != nil {
		s.logger.Warn("append activity failed", zap.String("kind", kind), zap.Error(err))
	}
}
