package model

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// ID is a backend identifier. The REST API returns numeric ids for most
// resources but some endpoints send them as strings; both decode to ID.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Segment returns id escaped as exactly one URL path segment: slashes, query
// and fragment markers are escaped and "." / ".." never reach the backend as
// relative segments.
func (id ID) Segment() string {
	s := url.PathEscape(string(id))
	if strings.Trim(s, ".") == "" {
		s = strings.ReplaceAll(s, ".", "%2E")
	}
	return s
}
