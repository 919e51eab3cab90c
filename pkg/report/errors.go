package report

import "errors"

// ErrEmptyTable is returned when exporting a table without any entry
var ErrEmptyTable = errors.New("nothing to export: no aggregated rows")
