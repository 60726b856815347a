// Package status carries the response statuses the server emits.
package status

import "strconv"

type Status struct {
	Code         uint
	ReasonPhrase string
}

// Text renders the status-line fragment, e.g. "200 OK".
func (s Status) Text() string {
	return strconv.FormatUint(uint64(s.Code), 10) + " " + s.ReasonPhrase
}

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15
var (
	OK                  = Status{200, "OK"}
	Created             = Status{201, "Created"}
	NotFound            = Status{404, "Not Found"}
	InternalServerError = Status{500, "Internal Server Error"}
)
