package profile

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/skilldash/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "profile.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(st.ProfileRepo(), st.SkillRepo(), st.ActivityRepo(), nil), st
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile store.Profile
		wantErr string
	}{
		{"empty is valid", store.Profile{}, ""},
		{"full valid", store.Profile{Email: "ada@example.com", WebsiteURL: "https://ada.dev", GitHubURL: "http://github.com/ada"}, ""},
		{"email without at", store.Profile{Email: "ada.example.com"}, "email"},
		{"email with two ats", store.Profile{Email: "a@b@c"}, "email"},
		{"email empty local", store.Profile{Email: "@example.com"}, "email"},
		{"ftp url", store.Profile{WebsiteURL: "ftp://ada.dev"}, "Website"},
		{"relative url", store.Profile{LinkedInURL: "linkedin.com/in/ada"}, "LinkedIn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.profile)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("err = %v, want ErrInvalidProfile", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllFields(t *testing.T) {
	err := Validate(&store.Profile{Email: "bad", AvatarURL: "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"email", "Avatar"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestSetField(t *testing.T) {
	var p store.Profile
	if err := SetField(&p, "job_title", "  Engineer "); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if p.JobTitle != "Engineer" {
		t.Errorf("JobTitle = %q", p.JobTitle)
	}
	if err := SetField(&p, "shoe_size", "42"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	p, err := svc.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.UserID != "u1" || p.FullName != "" {
		t.Errorf("empty profile = %+v", p)
	}

	p.FullName = " Ada Lovelace "
	p.WebsiteURL = "https://ada.dev"
	if err := svc.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := svc.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.FullName != "Ada Lovelace" {
		t.Errorf("FullName = %q", got.FullName)
	}

	p.Email = "invalid"
	if err := svc.Save(ctx, p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("Save invalid: err = %v", err)
	}

	acts, _ := st.ActivityRepo().Recent(ctx, "u1", 0)
	if len(acts) != 1 || acts[0].Kind != store.ActivityProfileUpdated {
		t.Errorf("activity = %+v, want one profile_updated", acts)
	}
}

func TestSeed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Seed(ctx, "u1", "ada@example.com", "Ada"); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := svc.Seed(ctx, "u1", "other@example.com", "Other"); err != nil {
		t.Fatalf("Seed again: %v", err)
	}
	p, _ := svc.Load(ctx, "u1")
	if p.Email != "ada@example.com" || p.FullName != "Ada" {
		t.Errorf("seeded profile = %+v, second seed should not overwrite", p)
	}
}

func TestSkills(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddSkill(ctx, "u1", " Go "); err != nil {
		t.Fatalf("AddSkill: %v", err)
	}
	if err := svc.AddSkill(ctx, "u1", "go"); !errors.Is(err, ErrDuplicateSkill) {
		t.Errorf("duplicate: err = %v", err)
	}
	if err := svc.AddSkill(ctx, "u1", "  "); !errors.Is(err, ErrEmptySkill) {
		t.Errorf("empty: err = %v", err)
	}
	if err := svc.AddSkill(ctx, "u1", "Rust"); err != nil {
		t.Fatalf("AddSkill: %v", err)
	}

	if err := svc.RemoveSkill(ctx, "u1", "GO"); err != nil {
		t.Fatalf("RemoveSkill: %v", err)
	}
	if err := svc.RemoveSkill(ctx, "u1", "Haskell"); !errors.Is(err, ErrSkillNotFound) {
		t.Errorf("remove missing: err = %v", err)
	}

	skills, err := svc.Skills(ctx, "u1")
	if err != nil {
		t.Fatalf("Skills: %v", err)
	}
	if len(skills) != 1 || skills[0].Name != "Rust" || skills[0].Source != "profile" {
		t.Errorf("skills = %+v", skills)
	}
}
