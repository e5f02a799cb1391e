package instrumentation

import "strings"

// Operation types used as metric label values. Keep this set closed:
// every new tool maps onto one of these rather than adding a value.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationSend   = "send"
	OperationSearch = "search"
)

// ExtractUserDomain returns the domain of an email address for use as a
// metric or log label. Anything that does not look like an address maps
// to "unknown" so label cardinality stays bounded.
func ExtractUserDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "unknown"
	}
	return strings.ToLower(email[at+1:])
}
