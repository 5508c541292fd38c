package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Keyer derives cache keys.
type Keyer interface {
	// LookupKey names the result of generating one analysis with the
	// generator identified by generatorID.
	LookupKey(generatorID, analysis string) string

	// ResponseKey names a rendered API response for route and its query
	// parameters.
	ResponseKey(route string, params map[string]string) string
}

// DefaultKeyer produces "lookup:" and "response:" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LookupKey returns "lookup:<generatorID>:<analysis>". Analyses are short
// and readable, so they stay in the key as they are.
func (DefaultKeyer) LookupKey(generatorID, analysis string) string {
	return "lookup:" + generatorID + ":" + analysis
}

// ResponseKey returns "response:<route>:<digest>", where the digest covers
// the route and its query string with parameters in name order.
func (DefaultKeyer) ResponseKey(route string, params map[string]string) string {
	q := make(url.Values, len(params))
	for name, value := range params {
		q.Set(name, value)
	}
	route = strings.Trim(route, "/")
	return "response:" + route + ":" + digest(route+"?"+q.Encode())
}

// digest is the hex SHA-256 of s. File cache entries are stored under the
// digest of their key, since keys hold characters that are not safe in
// file names.
func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
