package shared

import (
	"net/http"

	"github.com/openbesluit/reportgen/internal/domain"
)

// callerHeaders are the request headers captured as caller context.
// They identify and authorize the submitting caller and are forwarded
// unchanged to downstream deletion calls made on the caller's behalf.
var callerHeaders = []string{
	"Authorization",
	"Mu-Session-Id",
	"Mu-Call-Id",
	"Mu-Auth-Allowed-Groups",
}

// CallerContextFromRequest captures the caller/authorization headers of
// the request as an opaque caller context. Headers that are absent are
// simply not captured.
func CallerContextFromRequest(r *http.Request) domain.CallerContext {
	caller := make(domain.CallerContext)
	for _, name := range callerHeaders {
		if value := r.Header.Get(name); value != "" {
			caller[name] = value
		}
	}
	if len(caller) == 0 {
		return nil
	}
	return caller
}
