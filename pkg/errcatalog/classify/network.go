package classify

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

var proxyKinds = map[errcatalog.Kind]errcatalog.Kind{
	errcatalog.KindConnectionRefusedError: errcatalog.KindProxyConnectionRefusedError,
	errcatalog.KindRemoteHostClosedError:  errcatalog.KindProxyConnectionClosedError,
	errcatalog.KindHostNotFoundError:      errcatalog.KindProxyNotFoundError,
	errcatalog.KindTimeoutError:           errcatalog.KindProxyTimeoutError,
	errcatalog.KindUnknownNetworkError:    errcatalog.KindUnknownProxyError,
}

// Network classifies dial, DNS, connection and cancellation errors. Failures
// while connecting to an HTTP proxy map to the proxy kinds.
func Network(err error) (Classification, bool) {
	kind, ok := networkKind(err)
	if !ok {
		return Classification{}, false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "proxyconnect" {
		if proxyKind, ok := proxyKinds[kind]; ok {
			kind = proxyKind
		}
	}
	return classification(errcatalog.CategoryNetwork, kind), true
}

func networkKind(err error) (errcatalog.Kind, bool) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, net.ErrClosed):
		return errcatalog.KindOperationCanceledError, true
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return errcatalog.KindTimeoutError, true
	case errors.Is(err, syscall.ECONNREFUSED):
		return errcatalog.KindConnectionRefusedError, true
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return errcatalog.KindRemoteHostClosedError, true
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETDOWN):
		return errcatalog.KindNetworkSessionFailedError, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsTimeout:
			return errcatalog.KindTimeoutError, true
		case dnsErr.IsTemporary:
			return errcatalog.KindTemporaryNetworkFailureError, true
		}
		return errcatalog.KindHostNotFoundError, true
	}

	if msg := err.Error(); strings.Contains(msg, "unsupported protocol scheme") {
		return errcatalog.KindProtocolUnknownError, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return errcatalog.KindTimeoutError, true
		}
		return errcatalog.KindUnknownNetworkError, true
	}
	return "", false
}
