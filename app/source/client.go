package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/syeehyn/ai-daily/app/config"
	"github.com/syeehyn/ai-daily/app/snapshot"
)

// APIBase is the default X API v2 endpoint prefix.
const APIBase = "https://api.x.com/2"

const requestTimeout = 25 * time.Second

// Client fetches timeline and search posts from the live X API. Calls are
// issued sequentially, one per tracked handle and one per topic query; a
// failure on one item is absorbed as zero posts for it and the loop moves
// on.
type Client struct {
	baseURL    string
	token      string
	cfg        *config.Config
	userAgent  string
	httpClient *http.Client
}

func NewClient(cfg *config.Config, token, baseURL, userAgent string) (*Client, error) {
	if token == "" {
		return nil, ErrMissingCredential
	}
	if baseURL == "" {
		baseURL = APIBase
	}

	return &Client{
		baseURL:   baseURL,
		token:     token,
		cfg:       cfg,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

func (c *Client) Name() string {
	return "live"
}

func (c *Client) Fetch(ctx context.Context) (*snapshot.Fetched, error) {
	timelinePosts, err := c.fetchTimelines(ctx)
	if err != nil {
		return nil, err
	}

	topicPosts, err := c.fetchTopics(ctx)
	if err != nil {
		return nil, err
	}

	return &snapshot.Fetched{
		TimelinePosts: timelinePosts,
		TopicPosts:    topicPosts,
	}, nil
}

type userResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

type rawTweet struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	CreatedAt     string           `json:"created_at"`
	AuthorID      string           `json:"author_id"`
	PublicMetrics snapshot.Metrics `json:"public_metrics"`
}

type tweetsResponse struct {
	Data     []rawTweet `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

func (c *Client) fetchTimelines(ctx context.Context) ([]snapshot.Post, error) {
	timelineMax := clampResults(c.cfg.Output.TimelineTweetsPerUser, 5, 100)
	posts := make([]snapshot.Post, 0)

	for _, handle := range c.cfg.InfluencerHandles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var user userResponse
		err := c.get(ctx, "/users/by/username/"+url.PathEscape(handle), url.Values{
			"user.fields": {"id,username,name"},
		}, &user)
		if err != nil {
			unavailable := &SourceUnavailableError{Item: "@" + handle, Err: err}
			slog.Warn("Skipping handle", "handle", handle, "error", unavailable)
			continue
		}
		if user.Data.ID == "" {
			unavailable := &SourceUnavailableError{Item: "@" + handle}
			slog.Warn("Handle did not resolve to a user", "handle", handle, "error", unavailable)
			continue
		}

		var tweets tweetsResponse
		err = c.get(ctx, "/users/"+user.Data.ID+"/tweets", url.Values{
			"max_results":  {strconv.Itoa(timelineMax)},
			"exclude":      {"retweets,replies"},
			"tweet.fields": {"created_at,public_metrics,lang"},
		}, &tweets)
		if err != nil {
			slog.Warn("Skipping handle timeline", "handle", handle, "error", err)
			continue
		}

		for _, tweet := range tweets.Data {
			posts = append(posts, normalizeTweet(tweet, handle, ""))
		}
	}

	return posts, nil
}

func (c *Client) fetchTopics(ctx context.Context) ([]snapshot.Post, error) {
	searchMax := clampResults(c.cfg.Output.SearchResultsPerQuery, 10, 100)
	posts := make([]snapshot.Post, 0)

	for _, query := range c.cfg.TopicQueries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var tweets tweetsResponse
		err := c.get(ctx, "/tweets/search/recent", url.Values{
			"query":        {query},
			"max_results":  {strconv.Itoa(searchMax)},
			"tweet.fields": {"created_at,public_metrics,lang"},
			"expansions":   {"author_id"},
			"user.fields":  {"username"},
		}, &tweets)
		if err != nil {
			slog.Warn("Skipping topic query", "query", query, "error", err)
			continue
		}

		userMap := make(map[string]string, len(tweets.Includes.Users))
		for _, user := range tweets.Includes.Users {
			if user.ID != "" && user.Username != "" {
				userMap[user.ID] = user.Username
			}
		}

		for _, tweet := range tweets.Data {
			handle := userMap[tweet.AuthorID]
			if handle == "" {
				handle = "unknown"
			}
			posts = append(posts, normalizeTweet(tweet, handle, query))
		}
	}

	return posts, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	requestURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// normalizeTweet maps a raw API record onto the uniform Post shape. Missing
// author resolves to "unknown"; a missing id or handle yields an empty
// permalink. Text is NFC-normalized so truncation and containment checks
// downstream see one canonical form.
func normalizeTweet(tweet rawTweet, handle, query string) snapshot.Post {
	author := handle
	if author == "" {
		author = "unknown"
	}

	createdAt := tweet.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	postURL := ""
	if tweet.ID != "" && author != "" {
		postURL = fmt.Sprintf("https://x.com/%s/status/%s", author, tweet.ID)
	}

	return snapshot.Post{
		ID:        tweet.ID,
		Handle:    author,
		Query:     query,
		Text:      norm.NFC.String(tweet.Text),
		CreatedAt: createdAt,
		Metrics:   tweet.PublicMetrics,
		URL:       postURL,
	}
}

func clampResults(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
