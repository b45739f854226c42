package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// CheckLinkReachable probes an external certificate link with a HEAD
// request. Best effort: submissions are accepted either way, the result
// only feeds a warning in the response.
func CheckLinkReachable(link string) bool {
	client := resty.New().SetTimeout(5 * time.Second)

	resp, err := client.R().Head(link)
	if err != nil {
		return false
	}
	return resp.StatusCode() < 400
}
