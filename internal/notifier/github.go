package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/sling"
	"github.com/pfrederiksen/pgconf-watch/internal/config"
	"github.com/pfrederiksen/pgconf-watch/internal/report"
)

const githubTimeout = 30 * time.Second

// GitHubNotifier files reports as issues in a GitHub repository
type GitHubNotifier struct {
	base       *sling.Sling
	repository string
	labels     []string
}

type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

type issueResponse struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

// apiError is the error document GitHub returns on failure
type apiError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

// NewGitHubNotifier creates a GitHub issue notifier. Token and repository are required.
func NewGitHubNotifier(cfg config.GitHubConfig, timeout time.Duration) (*GitHubNotifier, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("GitHub token and repository are required: %w", ErrMissingCredentials)
	}
	if timeout <= 0 {
		timeout = githubTimeout
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = config.DefaultAPIURL
	}
	labels := cfg.Labels
	if labels == nil {
		labels = config.DefaultLabels
	}

	base := sling.New().
		Client(&http.Client{Timeout: timeout}).
		Base(strings.TrimSuffix(apiURL, "/")+"/").
		Set("Authorization", "token "+cfg.Token).
		Set("Accept", "application/vnd.github.v3+json")

	return &GitHubNotifier{
		base:       base,
		repository: cfg.Repository,
		labels:     labels,
	}, nil
}

// Name implements Notifier
func (n *GitHubNotifier) Name() string {
	return "github"
}

// Notify creates an issue and returns its number and URL
func (n *GitHubNotifier) Notify(ctx context.Context, r *report.Report) (*Result, error) {
	req, err := n.base.New().
		Post(fmt.Sprintf("repos/%s/issues", n.repository)).
		BodyJSON(&issueRequest{Title: r.Title, Body: r.Body, Labels: n.labels}).
		Request()
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	issue := new(issueResponse)
	failure := new(apiError)
	resp, err := n.base.Do(req.WithContext(ctx), issue, failure)
	if resp != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		if failure.Message != "" {
			return nil, fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, failure.Message)
		}
		return nil, fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	return &Result{
		Channel: n.Name(),
		Number:  issue.Number,
		URL:     issue.HTMLURL,
	}, nil
}
