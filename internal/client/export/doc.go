// Package export writes a Snapshot as CSV, as an XLSX workbook with one sheet
// per account, or as JSON that the importer reads back.
package export
