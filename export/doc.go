/*
Package export renders report projections into files: a semicolon-separated
CSV report of the detail rows, and an XLSX workbook with the “Interesting
domains”, “Detail”, and “Valid Emails” sheets.
*/
package export
