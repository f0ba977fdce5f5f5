// Package client talks to the CrackGrid HTTP API. Client satisfies
// filter.DataSource, so the filter controller can run against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/app/models/dto"
	"github.com/yigit/crackgrid/internal/pkg/apperrors"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

// Client is an HTTP implementation of the catalog queries
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New creates a client for the API rooted at baseURL (e.g. http://host:8080/api/v1)
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Component("client"),
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// ListYears returns the raw year rows of every source
func (c *Client) ListYears(ctx context.Context) ([]models.YearRow, error) {
	resp, err := getJSON[dto.YearRowsResponse](ctx, c, "/years/rows", nil)
	if err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// ListCompanyIDsForYear returns the raw company ids of every source for a year
func (c *Client) ListCompanyIDsForYear(ctx context.Context, year int) ([]int64, error) {
	resp, err := getJSON[dto.CompanyIDsResponse](ctx, c, fmt.Sprintf("/years/%d/company-ids", year), nil)
	if err != nil {
		return nil, err
	}
	return resp.CompanyIDs, nil
}

// ResolveCompanyNames maps identifiers to display names
func (c *Client) ResolveCompanyNames(ctx context.Context, ids []int64) ([]models.CompanyName, error) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	query := url.Values{"ids": {strings.Join(parts, ",")}}

	resp, err := getJSON[dto.CompanyNamesResponse](ctx, c, "/companies", query)
	if err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

// GetCompanyDetails returns the combined detail record of one company in one year
func (c *Client) GetCompanyDetails(ctx context.Context, year int, companyID int64) (*models.CompanyDetails, error) {
	resp, err := getJSON[dto.CompanyDetailsResponse](ctx, c, fmt.Sprintf("/years/%d/companies/%d", year, companyID), nil)
	if err != nil {
		return nil, err
	}
	return &models.CompanyDetails{
		Students: resp.Students,
		Photos:   resp.Photos,
		Document: resp.Document,
	}, nil
}

// RecordAnalyticsEvent posts one analytics event
func (c *Client) RecordAnalyticsEvent(ctx context.Context, action models.AnalyticsAction, documentID int64, at time.Time) error {
	body, err := json.Marshal(dto.RecordAnalyticsEventRequest{
		Action:     string(action),
		DocumentID: documentID,
		Timestamp:  &at,
	})
	if err != nil {
		return fmt.Errorf("error encoding analytics event: %w", err)
	}

	res, err := c.do(ctx, http.MethodPost, "/analytics/events", nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

// Years returns the merged year list, newest first
func (c *Client) Years(ctx context.Context) ([]int, error) {
	resp, err := getJSON[dto.YearListResponse](ctx, c, "/years", nil)
	if err != nil {
		return nil, err
	}
	return resp.Years, nil
}

// Companies returns the merged company options of a year
func (c *Client) Companies(ctx context.Context, year int) ([]models.CompanyName, error) {
	resp, err := getJSON[dto.CompanyListResponse](ctx, c, fmt.Sprintf("/years/%d/companies", year), nil)
	if err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

// DownloadRoster fetches a roster workbook. A zero companyID requests the whole year.
// It returns the file name announced by the server.
func (c *Client) DownloadRoster(ctx context.Context, year int, companyID int64, out io.Writer) (string, error) {
	var query url.Values
	if companyID > 0 {
		query = url.Values{"companyId": {strconv.FormatInt(companyID, 10)}}
	}

	res, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/years/%d/export", year), query, nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if _, err := io.Copy(out, res.Body); err != nil {
		return "", apperrors.NewTransportError("reading roster download", err)
	}

	fileName := fmt.Sprintf("roster_%d.xlsx", year)
	if _, params, err := mime.ParseMediaType(res.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		fileName = params["filename"]
	}
	return fileName, nil
}

// do sends a request and turns transport failures and non-2xx answers into
// application errors. The caller closes the body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError(method+" "+path, err)
	}
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return res, nil
	}

	defer res.Body.Close()
	apiErr := decodeError(res)
	c.logger.Debug().Str("method", method).Str("path", path).Int("status", res.StatusCode).Msg("API request failed")
	return nil, apiErr
}

func decodeError(res *http.Response) error {
	message := res.Status
	var body dto.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, 64<<10)).Decode(&body); err == nil && body.Error != nil {
		message = body.Error.Message
	}

	switch {
	case res.StatusCode == http.StatusNotFound && body.Error != nil && body.Error.Code == dto.ErrorCodeNoData:
		return apperrors.NewCustomError(apperrors.ErrNoDataFound, message)
	case res.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError(message)
	case res.StatusCode == http.StatusBadRequest:
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, message)
	default:
		return apperrors.NewTransportError("unexpected response", fmt.Errorf("status %d: %s", res.StatusCode, message))
	}
}

func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T
	res, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return zero, err
	}
	defer res.Body.Close()

	var envelope struct {
		Data T `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return zero, apperrors.NewTransportError("decoding "+path, err)
	}
	return envelope.Data, nil
}
