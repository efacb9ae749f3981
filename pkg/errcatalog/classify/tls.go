package classify

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"strings"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

var certificateInvalidKinds = map[x509.InvalidReason]errcatalog.Kind{
	x509.NotAuthorizedToSign:           errcatalog.KindInvalidCaCertificate,
	x509.CANotAuthorizedForThisName:    errcatalog.KindCertificateRejected,
	x509.TooManyIntermediates:          errcatalog.KindPathLengthExceeded,
	x509.IncompatibleUsage:             errcatalog.KindInvalidPurpose,
	x509.NameMismatch:                  errcatalog.KindSubjectIssuerMismatch,
	x509.NameConstraintsWithoutSANs:    errcatalog.KindCertificateRejected,
	x509.UnconstrainedName:             errcatalog.KindCertificateRejected,
	x509.TooManyConstraints:            errcatalog.KindCertificateRejected,
	x509.CANotAuthorizedForExtKeyUsage: errcatalog.KindInvalidPurpose,
}

// TLS classifies certificate verification and TLS handshake failures.
// Certificate problems are SSLNetworkError kinds; a failed handshake without a
// certificate problem is the NetworkError SslHandshakeFailedError.
func TLS(err error) (Classification, bool) {
	var invalid x509.CertificateInvalidError
	if errors.As(err, &invalid) {
		if invalid.Reason == x509.Expired {
			// x509 reports both ends of the validity period as Expired.
			if strings.Contains(invalid.Detail, "before") {
				return ssl(errcatalog.KindCertificateNotYetValid), true
			}
			return ssl(errcatalog.KindCertificateExpired), true
		}
		if kind, ok := certificateInvalidKinds[invalid.Reason]; ok {
			return ssl(kind), true
		}
		return ssl(errcatalog.KindUnspecifiedError), true
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		if cert := unknownAuthority.Cert; cert != nil && bytes.Equal(cert.RawIssuer, cert.RawSubject) {
			return ssl(errcatalog.KindSelfSignedCertificate), true
		}
		return ssl(errcatalog.KindUnableToGetLocalIssuerCertificate), true
	}

	var hostname x509.HostnameError
	if errors.As(err, &hostname) {
		return ssl(errcatalog.KindHostNameMismatch), true
	}

	var insecure x509.InsecureAlgorithmError
	if errors.As(err, &insecure) || errors.Is(err, x509.ErrUnsupportedAlgorithm) {
		return ssl(errcatalog.KindCertificateSignatureFailed), true
	}

	var constraint x509.ConstraintViolationError
	if errors.As(err, &constraint) {
		return ssl(errcatalog.KindCertificateRejected), true
	}

	var roots x509.SystemRootsError
	if errors.As(err, &roots) {
		return ssl(errcatalog.KindUnableToGetLocalIssuerCertificate), true
	}

	var verification *tls.CertificateVerificationError
	if errors.As(err, &verification) {
		if len(verification.UnverifiedCertificates) == 0 {
			return ssl(errcatalog.KindNoPeerCertificate), true
		}
		return ssl(errcatalog.KindUnableToVerifyFirstCertificate), true
	}

	var recordHeader tls.RecordHeaderError
	if errors.As(err, &recordHeader) {
		return classification(errcatalog.CategoryNetwork, errcatalog.KindSslHandshakeFailedError), true
	}

	var alert tls.AlertError
	if errors.As(err, &alert) {
		return classification(errcatalog.CategoryNetwork, errcatalog.KindSslHandshakeFailedError), true
	}

	return Classification{}, false
}

func ssl(kind errcatalog.Kind) Classification {
	return classification(errcatalog.CategorySSL, kind)
}
