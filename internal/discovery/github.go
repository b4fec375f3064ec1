package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"tmuxtutor/internal/log"
)

// PopularRepos are well-known tmux dotfile repositories.
var PopularRepos = []string{
	"gpakosz/.tmux",
	"tmux-plugins/tmux-sensible",
	"samoshkin/tmux-config",
	"tony/tmux-config",
	"rothgar/awesome-tmux",
}

// configPaths are common locations for a tmux config inside a repo.
var configPaths = []string{
	".tmux.conf",
	"tmux.conf",
	".tmux/.tmux.conf",
	"tmux/.tmux.conf",
}

var (
	scrapeBindRe  = regexp.MustCompile(`^(?:bind-key|bind)\s+(.+)$`)
	scrapeTableRe = regexp.MustCompile(`^-T\s+\S+\s+`)
)

// Repo is a GitHub repository hosting a tmux configuration.
type Repo struct {
	Name        string
	FullName    string
	Description string
	Stars       int
	URL         string
}

// ScrapedKeybind is one binding lifted from a public config.
type ScrapedKeybind struct {
	SourceRepo string
	Keybind    string
	Command    string
	RawLine    string
	Context    string // preceding comment, if any
}

// Scraper fetches tmux configs from GitHub. The zero value is not usable;
// use NewScraper.
type Scraper struct {
	client *http.Client
	repos  []string
}

// NewScraper creates a scraper over the given repos, defaulting to
// PopularRepos when none are given.
func NewScraper(timeout time.Duration, repos ...string) *Scraper {
	if len(repos) == 0 {
		repos = PopularRepos
	}
	return &Scraper{
		client: &http.Client{Timeout: timeout},
		repos:  repos,
	}
}

// ParseKeybinds extracts bindings from raw config text. It keeps only the
// simple bind forms; -T table bindings lose their table flag but keep key
// and command.
func ParseKeybinds(config, sourceRepo string) []ScrapedKeybind {
	var keybinds []ScrapedKeybind
	lines := strings.Split(config, "\n")

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := scrapeBindRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		args := m[1]

		isRoot := false
		if strings.HasPrefix(args, "-n ") {
			isRoot = true
			args = args[3:]
		}
		if strings.HasPrefix(args, "-T ") {
			args = scrapeTableRe.ReplaceAllString(args, "")
		}

		ws := strings.IndexAny(args, " \t")
		if ws == -1 {
			continue
		}
		key := args[:ws]
		command := strings.TrimSpace(args[ws:])
		if command == "" {
			continue
		}

		keybind := key
		if isRoot {
			keybind = "-n " + key
		}

		var context string
		if i > 0 {
			if prev := strings.TrimSpace(lines[i-1]); strings.HasPrefix(prev, "#") {
				context = strings.TrimSpace(strings.TrimLeft(prev, "#"))
			}
		}

		keybinds = append(keybinds, ScrapedKeybind{
			SourceRepo: sourceRepo,
			Keybind:    keybind,
			Command:    command,
			RawLine:    line,
			Context:    context,
		})
	}

	return keybinds
}

// fetchConfig tries the common config paths on master and main branches.
func (s *Scraper) fetchConfig(ctx context.Context, repo string) (string, error) {
	for _, path := range configPaths {
		for _, branch := range []string{"master", "main"} {
			rawURL := fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", repo, branch, path)
			body, err := s.get(ctx, rawURL, nil)
			if err == nil {
				return body, nil
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
		}
	}
	return "", fmt.Errorf("no tmux config found in %s", repo)
}

// Scrape fetches and parses keybindings from all configured repos.
// Unreachable repos are skipped, not fatal.
func (s *Scraper) Scrape(ctx context.Context) ([]ScrapedKeybind, error) {
	var all []ScrapedKeybind
	for _, repo := range s.repos {
		config, err := s.fetchConfig(ctx, repo)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			log.Debugf("skipping %s: %v", repo, err)
			continue
		}
		all = append(all, ParseKeybinds(config, repo)...)
	}
	return all, nil
}

// RepoInfo fetches repository metadata from the GitHub API.
func (s *Scraper) RepoInfo(ctx context.Context, repo string) (*Repo, error) {
	body, err := s.get(ctx, "https://api.github.com/repos/"+repo, map[string]string{
		"Accept": "application/vnd.github.v3+json",
	})
	if err != nil {
		return nil, err
	}

	var data struct {
		Name        string `json:"name"`
		FullName    string `json:"full_name"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
		HTMLURL     string `json:"html_url"`
	}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, err
	}

	return &Repo{
		Name:        data.Name,
		FullName:    data.FullName,
		Description: data.Description,
		Stars:       data.Stars,
		URL:         data.HTMLURL,
	}, nil
}

// SearchRepos searches GitHub for tmux configuration repositories with at
// least minStars stars, ordered by stars descending.
func (s *Scraper) SearchRepos(ctx context.Context, query string, minStars, limit int) ([]Repo, error) {
	if query == "" {
		query = "tmux.conf"
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s stars:>%d", query, minStars))
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", fmt.Sprintf("%d", limit))

	body, err := s.get(ctx, "https://api.github.com/search/repositories?"+params.Encode(), map[string]string{
		"Accept": "application/vnd.github.v3+json",
	})
	if err != nil {
		return nil, err
	}

	var data struct {
		Items []struct {
			Name        string `json:"name"`
			FullName    string `json:"full_name"`
			Description string `json:"description"`
			Stars       int    `json:"stargazers_count"`
			HTMLURL     string `json:"html_url"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, err
	}

	repos := make([]Repo, 0, len(data.Items))
	for _, item := range data.Items {
		repos = append(repos, Repo{
			Name:        item.Name,
			FullName:    item.FullName,
			Description: item.Description,
			Stars:       item.Stars,
			URL:         item.HTMLURL,
		})
	}
	return repos, nil
}

func (s *Scraper) get(ctx context.Context, rawURL string, headers map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
