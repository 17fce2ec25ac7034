// Package sheets wraps the Google Sheets API as a read-only data source.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/msgsystec/backoffice/config"
	"github.com/msgsystec/backoffice/types"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	defaultSheetName = "Planilha Principal"
	readRange        = "A:Z"
)

// Client reads the configured spreadsheet. Access is per-deployment for
// now; per-user OAuth tokens come later, which is what AuthURL and
// SetAccessToken exist for.
type Client struct {
	oauth   *oauth2.Config
	sheetID string
	svc     *sheets.Service
}

// NewClient builds a Sheets client from the Google OAuth settings.
func NewClient(ctx context.Context, cfg config.GoogleConfig, redirectBase string) (*Client, error) {
	if strings.TrimSpace(cfg.SheetID) == "" {
		return nil, fmt.Errorf("google sheet id is required")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  strings.TrimSuffix(redirectBase, "/") + "/auth/callback",
		Scopes:       []string{sheets.SpreadsheetsReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, nil)))
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}

	return &Client{
		oauth:   oauthCfg,
		sheetID: cfg.SheetID,
		svc:     svc,
	}, nil
}

// SetAccessToken rebuilds the API client around the given access token.
func (c *Client) SetAccessToken(ctx context.Context, accessToken string) error {
	token := &oauth2.Token{AccessToken: accessToken}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(c.oauth.Client(ctx, token)))
	if err != nil {
		return fmt.Errorf("init sheets service: %w", err)
	}
	c.svc = svc
	return nil
}

// Read fetches the sheet contents and converts rows into records keyed
// by the header row.
func (c *Client) Read(ctx context.Context) (types.SheetData, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.sheetID, readRange).Context(ctx).Do()
	if err != nil {
		return types.SheetData{}, fmt.Errorf("read spreadsheet %s: %w", c.sheetID, err)
	}

	return types.SheetData{
		ID:          c.sheetID,
		Name:        defaultSheetName,
		Data:        TransformRows(resp.Values),
		LastUpdated: time.Now(),
	}, nil
}

// Info returns the spreadsheet id and title.
func (c *Client) Info(ctx context.Context) (types.SheetInfo, error) {
	resp, err := c.svc.Spreadsheets.Get(c.sheetID).Context(ctx).Do()
	if err != nil {
		return types.SheetInfo{}, fmt.Errorf("get spreadsheet %s: %w", c.sheetID, err)
	}

	name := defaultSheetName
	if resp.Properties != nil && resp.Properties.Title != "" {
		name = resp.Properties.Title
	}

	return types.SheetInfo{
		ID:          resp.SpreadsheetId,
		Name:        name,
		LastUpdated: time.Now(),
	}, nil
}

// AuthURL returns the offline-access consent URL for the read-only scope.
func (c *Client) AuthURL() string {
	return c.oauth.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// TransformRows converts raw sheet values into records. The first row
// supplies the keys; short rows pad with empty strings, and rows wider
// than the header drop the extra cells.
func TransformRows(rows [][]interface{}) []map[string]string {
	if len(rows) == 0 {
		return []map[string]string{}
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = fmt.Sprint(cell)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = fmt.Sprint(row[i])
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records
}
