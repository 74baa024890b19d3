// Package address turns the flat label/value output of a statistical address
// parser into a typed Address.
//
// Most components are copied through as free text. Three are classified:
//   - postcode: kept verbatim, dropped when blank
//   - state: US state code, Canadian province code, or other text
//   - country: ISO 3166-1 alpha-2 shape, alpha-3 shape, or a free-form name
//
// Classification is structural. Iso2/Iso3 mean "looks like" a code, nothing is
// checked against a registry, and state and country are never cross-checked.
//
// Every type here is an immutable value. Conversions share no state and are
// safe to run concurrently.
package address
