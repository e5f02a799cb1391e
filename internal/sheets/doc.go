// Package sheets wraps the Google Sheets API for reading and writing
// cell ranges in A1 notation.
package sheets
