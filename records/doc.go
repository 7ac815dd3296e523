// Package records turns a booking table into the typed, globally normalised
// feature arrays the graph builders consume.
//
// A Table is read from CSV (ReadCSV) or from any database/sql source (ReadSQL).
// Both readers check the header against a Schema before parsing a single cell,
// so a missing column fails with a *SchemaError and nothing downstream runs.
//
// Extract then derives, for the whole batch at once:
//
//	Days        timestamp as fractional days since the Unix epoch
//	Agency/User identity keys interned to small ints by canonical value
//	Value       MinMax(log1p(booking value))
//	Lead        MinMax(lead time in days)
//	flags       cancelled, disputed, suspicious (suspicious_pax_domains > 0)
//
// Normalisation constants are computed over the entire table, never per chunk,
// so any later row-blocked computation sees identical inputs.
package records
