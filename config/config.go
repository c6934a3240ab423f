// Package config holds the build-time constants that parameterize the
// object store and wire-protocol client. None of these are read from the
// environment: the digest algorithm and compression level are compiled in,
// per the external-interfaces contract.
package config // import "gitkit.dev/config"

// DigestName is the name of the content-digest algorithm currently in use.
// It is advertised to servers as the object-format capability.
const DigestName = "sha1"

// CompressionLevel is the zlib level used when persisting object envelopes.
const CompressionLevel = 6

// ClientVersion is embedded in the User-Agent header sent to transports.
const ClientVersion = "2.42.0"

// UserAgent is the exact User-Agent header value sent with every HTTP
// request made during negotiation and fetch.
const UserAgent = "git/" + ClientVersion

// ProtocolVersion is the git wire protocol version this client speaks.
const ProtocolVersion = "2"

// PackChunkSize is the chunk size used by the buffered stream cursor when
// pulling more bytes from the underlying transport.
const PackChunkSize = 64 * 1024
