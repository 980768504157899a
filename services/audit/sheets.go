package audit

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const driveScope = "https://www.googleapis.com/auth/drive"

// ErrMissingCredentials means neither inline JSON nor a key file was
// configured for the service account.
var ErrMissingCredentials = errors.New("service account credentials are not configured")

type SheetConfig struct {
	SpreadsheetID   string
	Worksheet       string
	CredentialsJSON string
	CredentialsFile string
}

// SheetStore appends audit rows to a Google Sheets worksheet. The API client
// is built on first use and kept once it succeeds.
type SheetStore struct {
	config  SheetConfig
	options []option.ClientOption

	mu      sync.Mutex
	service *sheets.Service
}

// NewSheetStore creates a store. opts replace the credential lookup when set.
func NewSheetStore(cfg SheetConfig, opts ...option.ClientOption) *SheetStore {
	return &SheetStore{config: cfg, options: opts}
}

func (s *SheetStore) EnsureHeader(ctx context.Context) error {
	values, err := s.values()
	if err != nil {
		return remoteErr("connect", err)
	}

	resp, err := values.Get(s.config.SpreadsheetID, s.sheetRange("1:1")).Context(ctx).Do()
	if err != nil {
		return remoteErr("read header", err)
	}

	var firstRow []string
	if len(resp.Values) > 0 {
		for _, v := range resp.Values[0] {
			firstRow = append(firstRow, fmt.Sprint(v))
		}
	}
	if HeaderMatches(firstRow) {
		return nil
	}

	header := &sheets.ValueRange{Values: [][]interface{}{headerValues()}}
	if _, err := values.Update(s.config.SpreadsheetID, s.sheetRange(headerRange), header).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return remoteErr("write header", err)
	}
	return nil
}

func (s *SheetStore) Append(ctx context.Context, row Row) error {
	values, err := s.values()
	if err != nil {
		return remoteErr("connect", err)
	}

	body := &sheets.ValueRange{Values: [][]interface{}{row.Values()}}
	if _, err := values.Append(s.config.SpreadsheetID, s.sheetRange("A1"), body).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return remoteErr("append", err)
	}
	return nil
}

func (s *SheetStore) values() (*sheets.SpreadsheetsValuesService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service != nil {
		return s.service.Spreadsheets.Values, nil
	}
	if s.config.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is not configured")
	}

	opts := s.options
	if len(opts) == 0 {
		credentials, err := s.credentials()
		if err != nil {
			return nil, err
		}
		opts = []option.ClientOption{
			option.WithCredentialsJSON(credentials),
			option.WithScopes(sheets.SpreadsheetsScope, driveScope),
		}
	}

	// the client outlives the request, so it must not carry its context
	service, err := sheets.NewService(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create sheets client")
	}
	s.service = service
	return service.Spreadsheets.Values, nil
}

func (s *SheetStore) credentials() ([]byte, error) {
	if raw := strings.TrimSpace(s.config.CredentialsJSON); raw != "" {
		return []byte(raw), nil
	}
	if s.config.CredentialsFile != "" {
		b, err := os.ReadFile(s.config.CredentialsFile)
		if err != nil {
			return nil, errors.Wrapf(err, "read credentials file %s", s.config.CredentialsFile)
		}
		return b, nil
	}
	return nil, ErrMissingCredentials
}

func (s *SheetStore) sheetRange(cells string) string {
	name := strings.ReplaceAll(s.config.Worksheet, "'", "''")
	return fmt.Sprintf("'%s'!%s", name, cells)
}
