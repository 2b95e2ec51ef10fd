// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wiki

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/wiki-search/pkg/types"
)

// ErrInvalidJSON is returned when the response body is not JSON.
var ErrInvalidJSON = errors.New("search API response is not valid JSON")

// APIError is a MediaWiki error object returned in place of results.
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("search API error %s: %s", e.Code, e.Info)
}

// MapPages converts a search response into result records. Records follow
// the order in which query.pages lists its keys. A response without a query
// key has no matches and yields an empty list.
func MapPages(body []byte) ([]types.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	doc := gjson.ParseBytes(body)
	if apiErr := doc.Get("error"); apiErr.IsObject() {
		return nil, &APIError{
			Code: apiErr.Get("code").String(),
			Info: apiErr.Get("info").String(),
		}
	}

	results := []types.Result{}
	pages := doc.Get("query.pages")
	if !pages.IsObject() {
		return results, nil
	}

	pages.ForEach(func(id, page gjson.Result) bool {
		results = append(results, types.Result{
			ID:      id.String(),
			Title:   page.Get("title").String(),
			Extract: page.Get("extract").String(),
			Image:   page.Get("thumbnail.source").String(),
		})
		return true
	})
	return results, nil
}
