// Package domain contains the core model for invoicer: company and client
// records, the parsed invoice request, line items and the computed invoice.
//
// The domain does not depend on YAML parsing, rendering backends or the
// filesystem. Infra/adapters map into/from these types.
package domain
