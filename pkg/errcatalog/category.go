package errcatalog

import (
	"fmt"
	"slices"
)

// Category groups related error kinds. The set of categories is closed.
type Category string

const (
	CategoryApplication Category = "ApplicationError"
	CategoryServer      Category = "ServerError"
	CategoryOAuth2      Category = "OAuth2Error"
	CategoryNetwork     Category = "NetworkError"
	CategorySSL         Category = "SSLNetworkError"
	CategoryJSON        Category = "JSONError"
)

// Kind identifies a specific error within its category.
type Kind string

// Kinds shared by every category.
const (
	KindNoError      Kind = "NoError"
	KindUnknownError Kind = "UnknownError"
)

// Application kinds.
const (
	KindLocalizationError Kind = "LocalizationError"
)

// Server kinds.
const (
	KindBadRequest       Kind = "BadRequest"
	KindResourceNotFound Kind = "ResourceNotFound"
)

// OAuth2 kinds.
const (
	KindInvalidRequest          Kind = "InvalidRequest"
	KindInvalidClient           Kind = "InvalidClient"
	KindUnauthorizedClient      Kind = "UnauthorizedClient"
	KindRedirectURIMismatch     Kind = "RedirectUriMismatch"
	KindAccessDenied            Kind = "AccessDenied"
	KindUnsupportedResponseType Kind = "UnsupportedResponseType"
	KindUnsupportedGrantType    Kind = "UnsupportedGrantType"
	KindInvalidGrant            Kind = "InvalidGrant"
	KindInvalidScope            Kind = "InvalidScope"
	KindEmptyToken              Kind = "EmptyToken"
)

// Network kinds.
const (
	KindConnectionRefusedError            Kind = "ConnectionRefusedError"
	KindRemoteHostClosedError             Kind = "RemoteHostClosedError"
	KindHostNotFoundError                 Kind = "HostNotFoundError"
	KindTimeoutError                      Kind = "TimeoutError"
	KindOperationCanceledError            Kind = "OperationCanceledError"
	KindSslHandshakeFailedError           Kind = "SslHandshakeFailedError"
	KindTemporaryNetworkFailureError      Kind = "TemporaryNetworkFailureError"
	KindNetworkSessionFailedError         Kind = "NetworkSessionFailedError"
	KindBackgroundRequestNotAllowedError  Kind = "BackgroundRequestNotAllowedError"
	KindProxyConnectionRefusedError       Kind = "ProxyConnectionRefusedError"
	KindProxyConnectionClosedError        Kind = "ProxyConnectionClosedError"
	KindProxyNotFoundError                Kind = "ProxyNotFoundError"
	KindProxyTimeoutError                 Kind = "ProxyTimeoutError"
	KindProxyAuthenticationRequiredError  Kind = "ProxyAuthenticationRequiredError"
	KindContentAccessDenied               Kind = "ContentAccessDenied"
	KindContentOperationNotPermittedError Kind = "ContentOperationNotPermittedError"
	KindContentNotFoundError              Kind = "ContentNotFoundError"
	KindAuthenticationRequiredError       Kind = "AuthenticationRequiredError"
	KindContentReSendError                Kind = "ContentReSendError"
	KindProtocolUnknownError              Kind = "ProtocolUnknownError"
	KindProtocolInvalidOperationError     Kind = "ProtocolInvalidOperationError"
	KindUnknownNetworkError               Kind = "UnknownNetworkError"
	KindUnknownProxyError                 Kind = "UnknownProxyError"
	KindUnknownContentError               Kind = "UnknownContentError"
	KindProtocolFailure                   Kind = "ProtocolFailure"
)

// SSL kinds.
const (
	KindUnableToGetIssuerCertificate        Kind = "UnableToGetIssuerCertificate"
	KindUnableToDecryptCertificateSignature Kind = "UnableToDecryptCertificateSignature"
	KindUnableToDecodeIssuerPublicKey       Kind = "UnableToDecodeIssuerPublicKey"
	KindCertificateSignatureFailed          Kind = "CertificateSignatureFailed"
	KindCertificateNotYetValid              Kind = "CertificateNotYetValid"
	KindCertificateExpired                  Kind = "CertificateExpired"
	KindInvalidNotBeforeField               Kind = "InvalidNotBeforeField"
	KindInvalidNotAfterField                Kind = "InvalidNotAfterField"
	KindSelfSignedCertificate               Kind = "SelfSignedCertificate"
	KindSelfSignedCertificateInChain        Kind = "SelfSignedCertificateInChain"
	KindUnableToGetLocalIssuerCertificate   Kind = "UnableToGetLocalIssuerCertificate"
	KindUnableToVerifyFirstCertificate      Kind = "UnableToVerifyFirstCertificate"
	KindCertificateRevoked                  Kind = "CertificateRevoked"
	KindInvalidCaCertificate                Kind = "InvalidCaCertificate"
	KindPathLengthExceeded                  Kind = "PathLengthExceeded"
	KindInvalidPurpose                      Kind = "InvalidPurpose"
	KindCertificateUntrusted                Kind = "CertificateUntrusted"
	KindCertificateRejected                 Kind = "CertificateRejected"
	KindSubjectIssuerMismatch               Kind = "SubjectIssuerMismatch"
	KindAuthorityIssuerSerialNumberMismatch Kind = "AuthorityIssuerSerialNumberMismatch"
	KindNoPeerCertificate                   Kind = "NoPeerCertificate"
	KindHostNameMismatch                    Kind = "HostNameMismatch"
	KindNoSslSupport                        Kind = "NoSslSupport"
	KindCertificateBlacklisted              Kind = "CertificateBlacklisted"
	KindUnspecifiedError                    Kind = "UnspecifiedError"
)

// JSON kinds.
const (
	KindUnterminatedObject    Kind = "UnterminatedObject"
	KindMissingNameSeparator  Kind = "MissingNameSeparator"
	KindUnterminatedArray     Kind = "UnterminatedArray"
	KindMissingValueSeparator Kind = "MissingValueSeparator"
	KindIllegalValue          Kind = "IllegalValue"
	KindTerminationByNumber   Kind = "TerminationByNumber"
	KindIllegalNumber         Kind = "IllegalNumber"
	KindIllegalEscapeSequence Kind = "IllegalEscapeSequence"
	KindIllegalUTF8String     Kind = "IllegalUTF8String"
	KindUnterminatedString    Kind = "UnterminatedString"
	KindMissingObject         Kind = "MissingObject"
	KindDeepNesting           Kind = "DeepNesting"
	KindDocumentTooLarge      Kind = "DocumentTooLarge"
)

// categoryKinds is the closed kind table of every category, in declaration order.
var categoryKinds = map[Category][]Kind{
	CategoryApplication: {
		KindNoError,
		KindLocalizationError,
		KindUnknownError,
	},
	CategoryServer: {
		KindNoError,
		KindBadRequest,
		KindResourceNotFound,
		KindUnknownError,
	},
	CategoryOAuth2: {
		KindNoError,
		KindInvalidRequest,
		KindInvalidClient,
		KindUnauthorizedClient,
		KindRedirectURIMismatch,
		KindAccessDenied,
		KindUnsupportedResponseType,
		KindUnsupportedGrantType,
		KindInvalidGrant,
		KindInvalidScope,
		KindEmptyToken,
		KindUnknownError,
	},
	CategoryNetwork: {
		KindNoError,
		KindConnectionRefusedError,
		KindRemoteHostClosedError,
		KindHostNotFoundError,
		KindTimeoutError,
		KindOperationCanceledError,
		KindSslHandshakeFailedError,
		KindTemporaryNetworkFailureError,
		KindNetworkSessionFailedError,
		KindBackgroundRequestNotAllowedError,
		KindProxyConnectionRefusedError,
		KindProxyConnectionClosedError,
		KindProxyNotFoundError,
		KindProxyTimeoutError,
		KindProxyAuthenticationRequiredError,
		KindContentAccessDenied,
		KindContentOperationNotPermittedError,
		KindContentNotFoundError,
		KindAuthenticationRequiredError,
		KindContentReSendError,
		KindProtocolUnknownError,
		KindProtocolInvalidOperationError,
		KindUnknownNetworkError,
		KindUnknownProxyError,
		KindUnknownContentError,
		KindProtocolFailure,
		KindUnknownError,
	},
	CategorySSL: {
		KindNoError,
		KindUnableToGetIssuerCertificate,
		KindUnableToDecryptCertificateSignature,
		KindUnableToDecodeIssuerPublicKey,
		KindCertificateSignatureFailed,
		KindCertificateNotYetValid,
		KindCertificateExpired,
		KindInvalidNotBeforeField,
		KindInvalidNotAfterField,
		KindSelfSignedCertificate,
		KindSelfSignedCertificateInChain,
		KindUnableToGetLocalIssuerCertificate,
		KindUnableToVerifyFirstCertificate,
		KindCertificateRevoked,
		KindInvalidCaCertificate,
		KindPathLengthExceeded,
		KindInvalidPurpose,
		KindCertificateUntrusted,
		KindCertificateRejected,
		KindSubjectIssuerMismatch,
		KindAuthorityIssuerSerialNumberMismatch,
		KindNoPeerCertificate,
		KindHostNameMismatch,
		KindNoSslSupport,
		KindCertificateBlacklisted,
		KindUnspecifiedError,
		KindUnknownError,
	},
	CategoryJSON: {
		KindNoError,
		KindUnterminatedObject,
		KindMissingNameSeparator,
		KindUnterminatedArray,
		KindMissingValueSeparator,
		KindIllegalValue,
		KindTerminationByNumber,
		KindIllegalNumber,
		KindIllegalEscapeSequence,
		KindIllegalUTF8String,
		KindUnterminatedString,
		KindMissingObject,
		KindDeepNesting,
		KindDocumentTooLarge,
		KindUnknownError,
	},
}

// Categories returns every known category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryApplication,
		CategoryServer,
		CategoryOAuth2,
		CategoryNetwork,
		CategorySSL,
		CategoryJSON,
	}
}

// Kinds returns the kinds declared for the category, or nil for an unknown category.
func Kinds(c Category) []Kind {
	return slices.Clone(categoryKinds[c])
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryKinds[c]
	return ok
}

// Declares reports whether k belongs to the closed kind table of c.
func (c Category) Declares(k Kind) bool {
	return slices.Contains(categoryKinds[c], k)
}

// Key is the stable identity of an error: a kind within a category.
type Key struct {
	Category Category `json:"category"`
	Kind     Kind     `json:"kind"`
}

// NewKey is a shorthand for Key{Category: c, Kind: k}.
func NewKey(c Category, k Kind) Key {
	return Key{Category: c, Kind: k}
}

func (k Key) String() string {
	return fmt.Sprintf("%s.%s", k.Category, k.Kind)
}

// Unknown returns the UnknownError key of the same category.
func (k Key) Unknown() Key {
	return Key{Category: k.Category, Kind: KindUnknownError}
}
