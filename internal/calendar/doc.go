// Package calendar wraps the Google Calendar API for event listing and
// management. A Client is bound to one account; write operations are
// gated at the tool layer.
package calendar
