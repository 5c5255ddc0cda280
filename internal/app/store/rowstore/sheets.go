// internal/app/store/rowstore/sheets.go
package rowstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultSheetsBaseURL is the production Sheets API endpoint.
const DefaultSheetsBaseURL = "https://sheets.googleapis.com/v4"

// SheetsStore backs tables with the tabs of one Google Sheets spreadsheet,
// using the values endpoints of the Sheets REST API. Row 1 of every tab is
// a header row; data rows start at row 2, so table row index 0 addresses
// sheet row 2.
//
// The HTTP client must carry authorization (an oauth2 service-account
// client in production, a plain client against a stub server in tests).
type SheetsStore struct {
	hc            *http.Client
	baseURL       string
	spreadsheetID string
}

// NewSheetsStore returns a store over the given spreadsheet. baseURL is
// usually DefaultSheetsBaseURL.
func NewSheetsStore(hc *http.Client, baseURL, spreadsheetID string) *SheetsStore {
	if baseURL == "" {
		baseURL = DefaultSheetsBaseURL
	}
	return &SheetsStore{hc: hc, baseURL: baseURL, spreadsheetID: spreadsheetID}
}

// Table returns a view over the named sheet tab. The tab must already
// exist; a missing tab surfaces as ErrNoSuchTable on first use.
func (s *SheetsStore) Table(name string) (Table, error) {
	if name == "" {
		return nil, ErrNoSuchTable
	}
	return &sheetTable{store: s, sheet: name}, nil
}

type sheetTable struct {
	store *SheetsStore
	sheet string
}

// valueRange mirrors the Sheets API values payload.
type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

func (t *sheetTable) ReadAllRows(ctx context.Context) ([][]string, error) {
	rng := fmt.Sprintf("%s!A2:ZZ", t.sheet)
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		t.store.baseURL, t.store.spreadsheetID, url.PathEscape(rng))

	var vr valueRange
	if err := t.store.do(ctx, http.MethodGet, u, nil, &vr); err != nil {
		return nil, err
	}
	return vr.Values, nil
}

func (t *sheetTable) AppendRow(ctx context.Context, row []string) error {
	rng := fmt.Sprintf("%s!A1", t.sheet)
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		t.store.baseURL, t.store.spreadsheetID, url.PathEscape(rng))
	return t.store.do(ctx, http.MethodPost, u, valueRange{Values: [][]string{row}}, nil)
}

func (t *sheetTable) WriteRow(ctx context.Context, rowIndex int, row []string) error {
	sheetRow := rowIndex + 2
	rng := fmt.Sprintf("%s!A%d:%s%d", t.sheet, sheetRow, columnLetter(len(row)-1), sheetRow)
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s?valueInputOption=RAW",
		t.store.baseURL, t.store.spreadsheetID, url.PathEscape(rng))
	return t.store.do(ctx, http.MethodPut, u, valueRange{Values: [][]string{row}}, nil)
}

func (t *sheetTable) WriteCell(ctx context.Context, rowIndex, colIndex int, value string) error {
	sheetRow := rowIndex + 2
	col := columnLetter(colIndex)
	rng := fmt.Sprintf("%s!%s%d", t.sheet, col, sheetRow)
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s?valueInputOption=RAW",
		t.store.baseURL, t.store.spreadsheetID, url.PathEscape(rng))
	return t.store.do(ctx, http.MethodPut, u, valueRange{Values: [][]string{{value}}}, nil)
}

// do runs one Sheets API call, encoding body as JSON when non-nil and
// decoding the response into out when non-nil. Non-2xx responses become
// errors carrying the status and a snippet of the body.
func (s *SheetsStore) do(ctx context.Context, method, u string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.hc.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoSuchTable
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheets request failed: %s: %s", resp.Status, snippet)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// columnLetter converts a zero-based column index to its A1-notation
// letters (0 -> A, 25 -> Z, 26 -> AA).
func columnLetter(i int) string {
	if i < 0 {
		i = 0
	}
	var b []byte
	n := i + 1
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
