package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/nhle/meeting-tracker/internal/model"
)

// restPrefix is where a PostgREST-compatible service exposes its tables.
const restPrefix = "/rest/v1"

// NewRESTClient creates a Client for a hosted PostgREST-compatible data
// service. The serviceKey is sent both as the apikey header and as a
// Bearer token.
func NewRESTClient(baseURL, serviceKey string) *Client {
	base := strings.TrimRight(baseURL, "/")
	rc := resty.New().
		SetBaseURL(base+restPrefix).
		SetHeader("apikey", serviceKey).
		SetAuthToken(serviceKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{
		Meetings:  NewRESTCollection[model.Meeting](rc),
		Todos:     NewRESTCollection[model.Todo](rc),
		Learnings: NewRESTCollection[model.Learning](rc),
		Backend:   strings.TrimPrefix(strings.TrimPrefix(base, "https://"), "http://"),
	}
}

// RESTCollection implements Collection against one PostgREST table.
type RESTCollection[T model.Record] struct {
	http  *resty.Client
	table table
}

// NewRESTCollection returns the REST collection backing record type T.
func NewRESTCollection[T model.Record](rc *resty.Client) *RESTCollection[T] {
	return &RESTCollection[T]{http: rc, table: tableFor[T]()}
}

// serviceErrorBody is the error document returned by PostgREST.
type serviceErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// List retrieves every record ordered by orderBy.
func (c *RESTCollection[T]) List(
	ctx context.Context,
	orderBy string,
	ascending bool,
) ([]T, error) {
	if err := c.table.checkOrder(orderBy); err != nil {
		return nil, err
	}

	direction := "desc"
	if ascending {
		direction = "asc"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", orderBy+"."+direction).
		Get(c.path())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.table.name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("listing %s: %w", c.table.name, serviceError(resp))
	}

	records := []T{}
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", c.table.name, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("collection", c.table.name).
		Int("rows", len(records)).
		Msg("listed records")

	return records, nil
}

// Insert stores a new record.
func (c *RESTCollection[T]) Insert(ctx context.Context, record T) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody([]T{record}).
		Post(c.path())
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", c.table.name, err)
	}
	if resp.IsError() {
		return fmt.Errorf("inserting into %s: %w", c.table.name, serviceError(resp))
	}
	return nil
}

// Update replaces the record with the given ID. The body carries every
// field except createdAt, which is immutable.
func (c *RESTCollection[T]) Update(ctx context.Context, id string, record T) error {
	if record.GetID() != id {
		return fmt.Errorf("updating %s %s: record carries id %q", c.table.name, id, record.GetID())
	}

	body, err := mutableFields(record)
	if err != nil {
		return fmt.Errorf("encoding %s %s: %w", c.table.name, id, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		SetBody(body).
		Patch(c.path())
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", c.table.name, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("updating %s %s: %w", c.table.name, id, serviceError(resp))
	}
	if affected(resp) == 0 {
		return fmt.Errorf("updating %s %s: %w", c.table.name, id, ErrNotFound)
	}
	return nil
}

// Delete removes the record with the given ID.
func (c *RESTCollection[T]) Delete(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		Delete(c.path())
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", c.table.name, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("deleting %s %s: %w", c.table.name, id, serviceError(resp))
	}
	if affected(resp) == 0 {
		return fmt.Errorf("deleting %s %s: %w", c.table.name, id, ErrNotFound)
	}
	return nil
}

func (c *RESTCollection[T]) path() string {
	return "/" + c.table.name
}

// mutableFields encodes record as a JSON object without its immutable
// columns other than id.
func mutableFields(record any) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	delete(fields, "createdAt")
	return fields, nil
}

// affected counts the rows echoed back by a return=representation request.
func affected(resp *resty.Response) int {
	if resp.StatusCode() == http.StatusNoContent {
		return 0
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return 0
	}
	return len(rows)
}

// serviceError turns an error response into an error carrying the
// service's own message text.
func serviceError(resp *resty.Response) error {
	var body serviceErrorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		return errors.New(body.Message)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
}
