/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"net/url"
	"strconv"
)

// ListOptions are the pagination parameters common to all list operations.
// Zero values are omitted from the query.
type ListOptions struct {
	Page  int
	Limit int
}

func (o *ListOptions) values() url.Values {
	if o == nil {
		return nil
	}
	query := url.Values{}
	if o.Page > 0 {
		query.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		query.Set("limit", strconv.Itoa(o.Limit))
	}
	return query
}
