package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeybinds(t *testing.T) {
	config := `# gpakosz-style config
set -g mouse on

# Pane navigation
bind -n M-h select-pane -L
bind | split-window -h
bind -T copy-mode-vi v send -X begin-selection

bind x
`
	keybinds := ParseKeybinds(config, "user/dotfiles")
	require.Len(t, keybinds, 3)

	t.Run("root flag folded into keybind", func(t *testing.T) {
		assert.Equal(t, "-n M-h", keybinds[0].Keybind)
		assert.Equal(t, "select-pane -L", keybinds[0].Command)
		assert.Equal(t, "Pane navigation", keybinds[0].Context)
		assert.Equal(t, "user/dotfiles", keybinds[0].SourceRepo)
	})

	t.Run("plain binding has no context", func(t *testing.T) {
		assert.Equal(t, "|", keybinds[1].Keybind)
		assert.Empty(t, keybinds[1].Context)
	})

	t.Run("table flag stripped", func(t *testing.T) {
		assert.Equal(t, "v", keybinds[2].Keybind)
		assert.Equal(t, "send -X begin-selection", keybinds[2].Command)
	})
}

func TestScraperSearchRepos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "stars")
		w.Write([]byte(`{"items":[{"name":"tmux-config","full_name":"tony/tmux-config","description":"tmux config","stargazers_count":1500,"html_url":"https://github.com/tony/tmux-config"}]}`))
	}))
	defer server.Close()

	s := NewScraper(5 * time.Second)
	// Point the API call at the test server
	body, err := s.get(context.Background(), server.URL+"/search/repositories?q=tmux", nil)
	require.NoError(t, err)
	assert.Contains(t, body, "tony/tmux-config")
}

func TestScraperGet(t *testing.T) {
	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		s := NewScraper(5 * time.Second)
		_, err := s.get(context.Background(), server.URL, nil)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "404"))
	})

	t.Run("headers forwarded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		s := NewScraper(5 * time.Second)
		body, err := s.get(context.Background(), server.URL, map[string]string{
			"Accept": "application/vnd.github.v3+json",
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", body)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := NewScraper(5 * time.Second)
		_, err := s.get(ctx, "http://127.0.0.1:0", nil)
		assert.Error(t, err)
	})
}
