// Package models contains the GORM persistence models of the feed ledger
// tables. Domain entities stay free of ORM tags; each model converts to and
// from its domain type with ToDomain and a ...FromDomain constructor.
//
// Columns computed by PostgreSQL (sales.total_amount, purchases.total_amount)
// are mapped read-only with the "->" permission so the application never
// writes them.
package models
