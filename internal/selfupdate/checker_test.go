package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReleaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/dash/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/` + tag + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		latest    string
		available bool
	}{
		{"newer release", "v1.2.0", "v1.3.0", true},
		{"same release", "v1.3.0", "v1.3.0", false},
		{"older release", "v2.0.0", "v1.9.9", false},
		{"missing v prefix", "1.2.0", "v1.10.0", true},
		{"prerelease to final", "v1.0.0-rc.1", "v1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newReleaseServer(t, tt.latest)
			checker := NewChecker(WithBaseURL(server.URL), WithRepository("acme", "dash"))

			res, err := checker.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.available, res.UpdateAvailable)
			assert.Equal(t, tt.latest, res.LatestVersion)
			assert.Equal(t, "https://example.com/"+tt.latest, res.ReleaseURL)
		})
	}
}

func TestCheck_InvalidVersions(t *testing.T) {
	server := newReleaseServer(t, "nightly")
	checker := NewChecker(WithBaseURL(server.URL), WithRepository("acme", "dash"))

	_, err := checker.Check(context.Background(), &CheckInput{Version: "(devel)"})
	assert.ErrorIs(t, err, ErrInvalidVersion)

	_, err = checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestCheck_HTTPError(t *testing.T) {
	server := newReleaseServer(t, "v1.0.0")
	checker := NewChecker(WithBaseURL(server.URL), WithRepository("someone", "else"))

	_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestWithRepository_KeepsDefaultsForEmpty(t *testing.T) {
	c := NewChecker(WithRepository("", ""))
	assert.Equal(t, defaultOwner, c.owner)
	assert.Equal(t, defaultRepo, c.repo)
}
