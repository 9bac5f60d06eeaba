package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// listFunc performs one raw day-window list call. It exists as a seam so the
// retry behavior is testable without the network.
type listFunc func(ctx context.Context, dayStart, dayEnd time.Time) ([]*calendar.Event, error)

// Client fetches one day of events, recovering from a stale token with a
// single invalidate-and-retry cycle.
type Client struct {
	CalendarID string

	oauth    *oauth2.Config
	provider TokenProvider
	list     listFunc
}

// NewClient builds a Client for the given calendar.
func NewClient(oauthCfg *oauth2.Config, provider TokenProvider, calendarID string) *Client {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Client{CalendarID: calendarID, oauth: oauthCfg, provider: provider}
}

// DayEvents lists the events overlapping [dayStart, dayEnd), ordered by start
// time by the provider. A 401 triggers exactly one invalidate + reacquire +
// retry; a second 401 surfaces as AuthError. Any other non-2xx becomes an
// HTTPError and is not retried.
func (c *Client) DayEvents(ctx context.Context, dayStart, dayEnd time.Time) ([]*calendar.Event, error) {
	raw, err := c.listOnce(ctx, dayStart, dayEnd)
	if err == nil {
		return raw, nil
	}
	if IsAuth(err) {
		return nil, err
	}
	status, ok := statusOf(err)
	if !ok || status != http.StatusUnauthorized {
		return nil, classify(err)
	}

	if ierr := c.provider.Invalidate(); ierr != nil {
		return nil, &AuthError{Err: ierr}
	}
	raw, err = c.listOnce(ctx, dayStart, dayEnd)
	if err == nil {
		return raw, nil
	}
	if status, ok := statusOf(err); ok && status == http.StatusUnauthorized {
		return nil, &AuthError{Err: err}
	}
	return nil, classify(err)
}

func (c *Client) listOnce(ctx context.Context, dayStart, dayEnd time.Time) ([]*calendar.Event, error) {
	if c.list != nil {
		return c.list(ctx, dayStart, dayEnd)
	}

	tok, err := c.provider.Token(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(c.oauth.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("gcal: create calendar service: %w", err)
	}

	res, err := svc.Events.List(c.CalendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// statusOf extracts an HTTP status from a provider error.
func statusOf(err error) (int, bool) {
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		return ge.Code, true
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status, true
	}
	return 0, false
}

// classify maps raw provider errors onto the package taxonomy.
func classify(err error) error {
	if IsAuth(err) {
		return err
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return err
	}
	if status, ok := statusOf(err); ok {
		return &HTTPError{Status: status, Err: err}
	}
	return fmt.Errorf("gcal: fetch events: %w", err)
}
