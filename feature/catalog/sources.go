package catalog

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tablet-ingest/core/table"
	"tablet-ingest/core/utils"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

const (
	titlesAssetRoot    = "goa/Resources/res/story/swa/"
	bookdataAssetRoot  = "mainapp_sw_tz.tar.gz:mainapp_sw_tz/Resources/localized/sw-tz/games/books/bookdata/"
	videoRawAssetRoot  = "library_sw_tz.tar.gz:library_sw_tz/localized/sw-tz/res/raw/"
	videoUnitAssetPath = "onecourse-assets-sw-v3.0.1.tar.gz:assets/oc-video*"

	// Spreadsheet exports start with a title block before the data rows.
	// Blank lines inside the block count towards it.
	tsvPreambleRows = 7

	// "video=" plus the four-character language tag precede the title
	videoParamsTitleOffset = 10
)

// FromTitlesJSON reads a story title object ({"folder": "title", ...}).
// Ids are assigned from 1 in the order the keys appear in the file.
func FromTitlesJSON(r io.Reader) ([]Asset, error) {
	// Key order carries the ids, so the object is walked token by token
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var assets []Asset
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading title key: %w", err)
		}
		key, _ := tok.(string)

		var title string
		if err := dec.Decode(&title); err != nil {
			return nil, fmt.Errorf("reading title of %q: %w", key, err)
		}

		assets = append(assets, Asset{
			ID:        strconv.Itoa(len(assets) + 1),
			Title:     title,
			AssetPath: titlesAssetRoot + key + "/",
		})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return assets, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading titles: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("reading titles: expected %q, got %v", want, tok)
	}
	return nil
}

// FromStorybookTSV reads a book data sheet. The id column holds "sw_102",
// column 3 the title and column 6 the book folder.
func FromStorybookTSV(r io.Reader) ([]Asset, error) {
	t, err := table.Decode(r, table.Options{Comma: '\t', SkipLines: tsvPreambleRows, NoHeader: true})
	if err != nil {
		return nil, err
	}

	assets := make([]Asset, 0, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) < 7 {
			return nil, fmt.Errorf("storybook row %d: expected 7 columns, got %d", i+tsvPreambleRows+1, len(row))
		}
		_, id, ok := strings.Cut(row[0], "_")
		if !ok {
			id = row[0]
		}
		assets = append(assets, Asset{
			ID:        id,
			Title:     row[3],
			AssetPath: bookdataAssetRoot + row[6] + "/",
		})
	}
	Sort(assets)
	return assets, nil
}

// FromVideoTSV reads a video data sheet. Ids are assigned from 1 in row order;
// column 3 holds the title and column 5 the file name.
func FromVideoTSV(r io.Reader) ([]Asset, error) {
	t, err := table.Decode(r, table.Options{Comma: '\t', SkipLines: tsvPreambleRows, NoHeader: true})
	if err != nil {
		return nil, err
	}

	assets := make([]Asset, 0, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("video row %d: expected 6 columns, got %d", i+tsvPreambleRows+1, len(row))
		}
		assets = append(assets, Asset{
			ID:        strconv.Itoa(len(assets) + 1),
			Title:     row[3],
			AssetPath: videoRawAssetRoot + row[5],
		})
	}
	return assets, nil
}

// FromVideoUnits reads the video units registered in a device database.
func FromVideoUnits(ctx context.Context, db *gorm.DB) ([]Asset, error) {
	rows, err := db.WithContext(ctx).
		Raw("SELECT unitid, params FROM units WHERE params LIKE '%video=%'").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var unit, params any
		if err := rows.Scan(&unit, &params); err != nil {
			return nil, err
		}
		p := utils.ToString(params)
		var title string
		if len(p) > videoParamsTitleOffset {
			title = p[videoParamsTitleOffset:]
		}
		assets = append(assets, Asset{
			ID:        utils.ToString(unit),
			Title:     title,
			AssetPath: videoUnitAssetPath,
		})
	}
	return assets, rows.Err()
}
