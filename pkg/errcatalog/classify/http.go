package classify

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

// HTTPStatus classifies an HTTP error response. BadRequest and ResourceNotFound
// carry the server supplied name and description; when the server sent none, the
// status text stands in. Authentication and access failures are network kinds,
// other 4xx and 5xx statuses are ServerError UnknownError with the status code.
func HTTPStatus(status int, name, description string) Classification {
	if name == "" {
		name = http.StatusText(status)
	}
	if description == "" {
		description = name
	}

	switch {
	case status < http.StatusBadRequest:
		return classification(errcatalog.CategoryServer, errcatalog.KindNoError)
	case status == http.StatusBadRequest:
		return serverMessage(errcatalog.KindBadRequest, name, description)
	case status == http.StatusNotFound:
		return serverMessage(errcatalog.KindResourceNotFound, name, description)
	case status == http.StatusUnauthorized:
		return classification(errcatalog.CategoryNetwork, errcatalog.KindAuthenticationRequiredError)
	case status == http.StatusForbidden:
		return classification(errcatalog.CategoryNetwork, errcatalog.KindContentAccessDenied)
	case status == http.StatusMethodNotAllowed:
		return classification(errcatalog.CategoryNetwork, errcatalog.KindContentOperationNotPermittedError)
	case status == http.StatusGone:
		return classification(errcatalog.CategoryNetwork, errcatalog.KindContentNotFoundError)
	case status == http.StatusProxyAuthRequired:
		return classification(errcatalog.CategoryNetwork, errcatalog.KindProxyAuthenticationRequiredError)
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return classification(errcatalog.CategoryNetwork, errcatalog.KindTimeoutError)
	case status == http.StatusServiceUnavailable:
		return classification(errcatalog.CategoryNetwork, errcatalog.KindTemporaryNetworkFailureError)
	}
	return classification(errcatalog.CategoryServer, errcatalog.KindUnknownError, strconv.Itoa(status))
}

func serverMessage(kind errcatalog.Kind, name, description string) Classification {
	return Classification{
		Key:             errcatalog.NewKey(errcatalog.CategoryServer, kind),
		NameArgs:        []any{name},
		DescriptionArgs: []any{description},
	}
}
