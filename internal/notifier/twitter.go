package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/pgconf-watch/internal/config"
	"github.com/pfrederiksen/pgconf-watch/internal/report"
)

const (
	maxTweetLength = 280
	twitterTimeout = 30 * time.Second
)

// TwitterNotifier posts a short announcement that the listing changed
type TwitterNotifier struct {
	httpClient *http.Client
	client     *twitter.Client
	sourceURL  string
}

// NewTwitterNotifier creates a Twitter notifier from OAuth1 credentials.
// A non-positive timeout uses 30 seconds.
func NewTwitterNotifier(ctx context.Context, cfg config.TwitterConfig, sourceURL string, timeout time.Duration) (*TwitterNotifier, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("Twitter API key, secret, and access tokens are required: %w", ErrMissingCredentials)
	}
	if timeout <= 0 {
		timeout = twitterTimeout
	}

	oauthConfig := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)

	// oauth1 returns a client without a timeout
	httpClient := oauthConfig.Client(ctx, token)
	httpClient.Timeout = timeout

	return NewTwitterNotifierWithClient(httpClient, sourceURL), nil
}

// NewTwitterNotifierWithClient creates a Twitter notifier on an already
// authenticated HTTP client
func NewTwitterNotifierWithClient(httpClient *http.Client, sourceURL string) *TwitterNotifier {
	return &TwitterNotifier{
		httpClient: httpClient,
		client:     twitter.NewClient(httpClient),
		sourceURL:  sourceURL,
	}
}

// Name implements Notifier
func (n *TwitterNotifier) Name() string {
	return "twitter"
}

type tweetResult struct {
	tweet *twitter.Tweet
	err   error
}

// Notify posts one tweet summarizing the report. The go-twitter client takes
// no context, so the post is abandoned when ctx ends; the client timeout
// bounds the request itself.
func (n *TwitterNotifier) Notify(ctx context.Context, r *report.Report) (*Result, error) {
	done := make(chan tweetResult, 1)
	go func() {
		tweet, _, err := n.client.Statuses.Update(formatTweet(r, n.sourceURL), nil)
		done <- tweetResult{tweet: tweet, err: err}
	}()

	var res tweetResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("posting tweet: %w", ctx.Err())
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("posting tweet: %w", res.err)
	}

	return &Result{
		Channel: n.Name(),
		URL:     fmt.Sprintf("https://twitter.com/i/web/status/%s", res.tweet.IDStr),
	}, nil
}

// formatTweet formats a report as a tweet
func formatTweet(r *report.Report, sourceURL string) string {
	var tweet strings.Builder

	tweet.WriteString("🐘 " + r.Title + "\n")
	if r.Summary != "" {
		tweet.WriteString("\n" + r.Summary + "\n")
	}
	if sourceURL != "" {
		tweet.WriteString("\n🔗 " + sourceURL + "\n")
	}
	tweet.WriteString("\n#PostgreSQL #pgconf")

	// Twitter limit is 280 characters
	runes := []rune(tweet.String())
	if len(runes) > maxTweetLength {
		return string(runes[:maxTweetLength-3]) + "..."
	}

	return tweet.String()
}
