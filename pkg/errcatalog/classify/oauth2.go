package classify

import (
	"errors"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

// RFC 6749 section 5.2 error codes.
var oauth2Codes = map[string]errcatalog.Kind{
	"invalid_request":           errcatalog.KindInvalidRequest,
	"invalid_client":            errcatalog.KindInvalidClient,
	"unauthorized_client":       errcatalog.KindUnauthorizedClient,
	"redirect_uri_mismatch":     errcatalog.KindRedirectURIMismatch,
	"access_denied":             errcatalog.KindAccessDenied,
	"unsupported_response_type": errcatalog.KindUnsupportedResponseType,
	"unsupported_grant_type":    errcatalog.KindUnsupportedGrantType,
	"invalid_grant":             errcatalog.KindInvalidGrant,
	"invalid_scope":             errcatalog.KindInvalidScope,
	"empty_token":               errcatalog.KindEmptyToken,
}

// OAuth2Code classifies an OAuth2 error code returned by an authorization server.
// Unknown codes become UnknownError with the code as diagnostic.
func OAuth2Code(code string) Classification {
	code = strings.ToLower(strings.TrimSpace(code))
	if kind, ok := oauth2Codes[code]; ok {
		return classification(errcatalog.CategoryOAuth2, kind)
	}
	return classification(errcatalog.CategoryOAuth2, errcatalog.KindUnknownError, code)
}

// OAuth2 classifies token endpoint failures reported by golang.org/x/oauth2.
func OAuth2(err error) (Classification, bool) {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.ErrorCode != "" {
			return OAuth2Code(retrieveErr.ErrorCode), true
		}
		if retrieveErr.Response != nil {
			return classification(errcatalog.CategoryOAuth2, errcatalog.KindUnknownError, retrieveErr.Response.StatusCode), true
		}
		return classification(errcatalog.CategoryOAuth2, errcatalog.KindUnknownError, "retrieve"), true
	}

	// x/oauth2 reports a token response without a token as a plain error.
	if msg := err.Error(); strings.HasPrefix(msg, "oauth2:") && strings.Contains(msg, "missing access_token") {
		return classification(errcatalog.CategoryOAuth2, errcatalog.KindEmptyToken), true
	}
	return Classification{}, false
}
