// Package glossary loads term definitions from spreadsheet uploads.
//
// A glossary file is an .xlsx/.xlsm workbook (first sheet) or a .csv file
// whose first row is a header, with terms in the first column and
// definitions in the second. LoadAll reads several files in parallel and
// merges them so that later files win.
package glossary
