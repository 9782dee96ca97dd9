// internal/status/constants.go
package status

// Lander link health codes.
// These values are logged and shown on the display; they MUST NOT be configurable.

// HealthUnknown represents the boot state before the first exchange.
const HealthUnknown uint16 = 0

// HealthOK represents a link that answered the last exchange.
const HealthOK uint16 = 1

// HealthError represents a link whose last exchange failed.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// ErrorNone means the last exchange succeeded.
const ErrorNone uint16 = 0

// ErrorGeneric is any failure that does not expose a more specific code.
const ErrorGeneric uint16 = 1

// ErrorTimeout means the lander did not answer within the bounded wait.
const ErrorTimeout uint16 = 2

// ErrorTransport means the socket failed and was discarded.
const ErrorTransport uint16 = 3

// SecondsInErrorMax caps the error duration counter.
const SecondsInErrorMax = 65535
