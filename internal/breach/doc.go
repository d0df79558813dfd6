// Package breach implements the client side of the Pwned Passwords
// k-anonymity range protocol.
//
// Only the five-character digest prefix leaves the process. The endpoint
// answers with every known suffix sharing that prefix, one SUFFIX:COUNT pair
// per line, and the exact match happens locally:
//
//	GET <base>/range/5BAA6
//
//	1E4C9B93F3F0682250B6CF8331B7EE68FD8:9659365
//	1E4FCB9D9A5E0E9A4F3A2B9C8D7E6F5A4B3:0
//
// Lookups are best-effort. A transport failure, timeout or non-200 status is
// reported through Result.Err rather than a Go error, so callers can keep the
// strength verdict and present the breach status as unverified.
package breach
