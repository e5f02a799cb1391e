// Package gmail wraps the Gmail API for message search, reading and
// sending. A Client is bound to one account and is safe for concurrent
// use.
package gmail
