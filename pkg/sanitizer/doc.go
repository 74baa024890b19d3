// Package sanitizer derives lookup keys from free-text address components.
//
// Address values themselves are stored verbatim; nothing here rewrites them.
// The keys produced are used only for indexing and query matching, so that
// "Tel Aviv", " tel-aviv " and "TEL  AVIV" all land on the same key.
//
// All functions are idempotent and never fail: input that has nothing left
// after normalization yields an empty string, and empty results are dropped
// from slices.
package sanitizer
