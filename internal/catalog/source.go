package catalog

import (
	"bytes"
	"context"
	"os"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/volubiks/storefront/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Source is one catalog feed. Fetch re-reads the whole feed and returns a
// fresh normalized snapshot.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Product, error)
}

// fetchRaw loads the feed body. URLs go through HTTP with a millisecond
// cache-buster; anything without a scheme is read as a local file, which the
// data tool and tests rely on.
func fetchRaw(ctx context.Context, url string) ([]byte, error) {
	if !strings.Contains(url, "://") {
		data, err := os.ReadFile(url)
		return data, errors.Wrapf(err, "read catalog file %s", url)
	}
	var body []byte
	var code int
	err := gout.GET(url).
		WithContext(ctx).
		SetQuery(gout.H{"t": time.Now().UnixMilli()}).
		SetHeader(gout.H{"Cache-Control": "no-cache"}).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "fetch catalog %s", url)
	}
	if code >= 400 {
		return nil, errors.Errorf("fetch catalog %s: status %d", url, code)
	}
	return body, nil
}

// JSONSource reads the pre-normalized JSON feed. Rows still pass through
// Normalize so both feeds share one image-resolution rule.
type JSONSource struct {
	URL string
}

func (s *JSONSource) Name() string { return "json" }

func (s *JSONSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	body, err := fetchRaw(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, errors.Wrap(err, "decode catalog json")
	}
	return NormalizeRows(rows), nil
}

// XLSXSource reads the spreadsheet feed: first sheet, first row as header,
// missing cells defaulting to empty strings.
type XLSXSource struct {
	URL string
}

func (s *XLSXSource) Name() string { return "xlsx" }

func (s *XLSXSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	body, err := fetchRaw(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	return ParseWorkbook(body)
}

// ParseWorkbook normalizes the first sheet of an xlsx document.
func ParseWorkbook(body []byte) ([]domain.Product, error) {
	book, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "open catalog workbook")
	}
	sheet := book.GetSheetName(book.GetActiveSheetIndex())
	if sheet == "" {
		sheet = book.GetSheetName(1)
	}
	rows := book.GetRows(sheet)
	if len(rows) == 0 {
		return []domain.Product{}, nil
	}

	header := rows[0]
	raw := make([]map[string]interface{}, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(map[string]interface{}, len(header))
		for i, key := range header {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if i < len(cells) {
				row[key] = cells[i]
			} else {
				row[key] = ""
			}
		}
		raw = append(raw, row)
	}
	return NormalizeRows(raw), nil
}
