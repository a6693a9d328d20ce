// Package core defines the domain model shared by every other package: raw
// grid structures, indexed cells, scoring records and the response envelope,
// plus spreadsheet address math and grid validation.
package core
