package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/warehouse-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
)

var (
	errTokenRequired   = errors.New("airtable token is required")
	errBaseURLRequired = errors.New("airtable base url is required")
	errLoggerRequired  = errors.New("airtable logger is required")
)

// Client exposes the record store verbs with centralized auth, logging, and
// error mapping. The store is eventually consistent; callers own staleness
// handling.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *logger.Logger
}

// NewClient initializes the record store client and validates the credentials.
func NewClient(cfg config.AirtableConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errTokenRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		token:      token,
		logger:     logg,
	}, nil
}

// ListOptions narrow a table listing.
type ListOptions struct {
	// Filter is a store formula, e.g. {sku}='SKU-1'.
	Filter string
	// SortField/SortDirection order the listing; direction is asc or desc.
	SortField     string
	SortDirection string
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// List fetches every record of a table, following the store's offset
// pagination until exhausted.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var records []Record
	offset := ""
	for {
		query := url.Values{}
		if opts.Filter != "" {
			query.Set("filterByFormula", opts.Filter)
		}
		if opts.SortField != "" {
			query.Set("sort[0][field]", opts.SortField)
			direction := opts.SortDirection
			if direction == "" {
				direction = "asc"
			}
			query.Set("sort[0][direction]", direction)
		}
		if offset != "" {
			query.Set("offset", offset)
		}

		endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(table))
		if encoded := query.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}

		var page listResponse
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page, "list "+table); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(table), url.PathEscape(id))
	var record Record
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &record, "get "+table); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a record and returns it with the assigned id.
func (c *Client) Create(ctx context.Context, table string, fields Fields) (*Record, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(table))
	var record Record
	if err := c.do(ctx, http.MethodPost, endpoint, Record{Fields: fields}, &record, "create "+table); err != nil {
		return nil, err
	}
	return &record, nil
}

// Patch updates the given fields of a record, leaving the rest untouched.
func (c *Client) Patch(ctx context.Context, table, id string, fields Fields) (*Record, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(table), url.PathEscape(id))
	var record Record
	if err := c.do(ctx, http.MethodPatch, endpoint, Record{Fields: fields}, &record, "patch "+table); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, dest any, op string) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+op)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request for "+op)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op+" failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		c.log(ctx, "error", op, map[string]any{"status": resp.StatusCode})
		return pkgerrors.Wrap(domainCodeForStatus(resp.StatusCode), apiErr, op+" failed")
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+op+" response")
	}
	return nil
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Warn(ctx, fmt.Sprintf("store %s", op))
	default:
		c.logger.Info(ctx, fmt.Sprintf("store %s", phase))
	}
}

// APIError carries a non-2xx store response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("store responded %d", e.Status)
	}
	return fmt.Sprintf("store responded %d: %s", e.Status, e.Body)
}

// HTTPStatus exposes the upstream status for error dumps.
func (e *APIError) HTTPStatus() int {
	return e.Status
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusUnprocessableEntity:
		return pkgerrors.CodeStateConflict
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}
