package common

// UnknownStr is the String() rendering of out-of-range enum values.
const UnknownStr = "unknown"
