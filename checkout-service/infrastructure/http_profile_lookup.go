package infrastructure

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var _ domain.ProfileLookup = (*HTTPProfileLookup)(nil)

const avatarBaseURL = "https://unavatar.io/tiktok/"

// profilePayload tolerates the field-name variants the upstream API has
// been observed to use.
type profilePayload struct {
	Name           string      `json:"name"`
	FullName       string      `json:"full_name"`
	Nickname       string      `json:"nickname"`
	Followers      interface{} `json:"followers"`
	FollowerCount  interface{} `json:"followerCount"`
	FollowersCount interface{} `json:"followers_count"`
}

// HTTPProfileLookup resolves recipient handles against a third-party
// profile API. Failures trip a circuit breaker and always surface as
// domain.ErrLookupUnavailable; the checkout flow degrades, it never
// blocks.
type HTTPProfileLookup struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
	apiKey  string
	host    string
}

// NewHTTPProfileLookup creates a new HTTPProfileLookup
func NewHTTPProfileLookup(baseURL, apiKey string, timeout time.Duration) *HTTPProfileLookup {
	host := ""
	if parsed, err := url.Parse(baseURL); err == nil {
		host = parsed.Host
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "profile-lookup",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 3 && counts.TotalFailures*10 >= counts.Requests*6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(log.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("circuit breaker state changed")
		},
	})

	return &HTTPProfileLookup{
		client:  resty.New().SetTimeout(timeout).SetRetryCount(0),
		breaker: breaker,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		host:    host,
	}
}

// Lookup resolves a normalized handle
func (l *HTTPProfileLookup) Lookup(ctx context.Context, handle string) (*domain.RecipientProfile, error) {
	if l.baseURL == "" || l.apiKey == "" {
		return nil, domain.ErrLookupUnavailable
	}

	result, err := l.breaker.Execute(func() (interface{}, error) {
		return l.fetch(ctx, handle)
	})
	if err != nil {
		log.WithField("handle", handle).WithError(err).Warn("profile lookup failed")
		return nil, domain.ErrLookupUnavailable
	}

	return result.(*domain.RecipientProfile), nil
}

func (l *HTTPProfileLookup) fetch(ctx context.Context, handle string) (*domain.RecipientProfile, error) {
	var payload profilePayload

	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("x-rapidapi-key", l.apiKey).
		SetHeader("x-rapidapi-host", l.host).
		SetResult(&payload).
		Get(l.baseURL + "/user/" + url.PathEscape(handle))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("profile lookup returned %d", resp.StatusCode())
	}

	return &domain.RecipientProfile{
		Handle:      handle,
		DisplayName: firstNonEmpty(payload.Name, payload.FullName, payload.Nickname),
		Followers:   parseFollowers(payload.Followers, payload.FollowerCount, payload.FollowersCount),
		AvatarURL:   avatarBaseURL + url.PathEscape(handle),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseFollowers accepts either a number or a formatted string like
// "1,234,567".
func parseFollowers(values ...interface{}) int64 {
	for _, v := range values {
		switch value := v.(type) {
		case float64:
			return int64(value)
		case string:
			digits := strings.Map(func(r rune) rune {
				if r >= '0' && r <= '9' {
					return r
				}
				return -1
			}, value)
			if digits == "" {
				continue
			}
			if parsed, err := strconv.ParseInt(digits, 10, 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}
