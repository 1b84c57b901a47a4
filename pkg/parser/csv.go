package parser

import (
	"github.com/Ramsey-B/fern/pkg/fieldmap"
	"github.com/Ramsey-B/fern/pkg/taxonomy"
)

// ParseRow maps one AIRS CSV row onto a Record using the column tables in
// fieldmap. Unknown headers are ignored, empty cells contribute nothing, and
// a fully blank row yields a nil record with no error. A header can map to
// more than one output attribute, such as PublicName naming both the record
// and its location, so every table is consulted for every column.
func ParseRow(headers, row []string, vocabularyOverride string) (*Record, error) {
	if isBlankRow(row) {
		return nil, nil
	}

	builder := &recordBuilder{}
	for i, column := range headers {
		if i >= len(row) {
			break
		}
		value := row[i]
		if value == "" {
			continue
		}

		if column == fieldmap.ParentAgencyColumn {
			builder.setParent(value)
		}
		if attr, ok := fieldmap.Record(column); ok {
			builder.setRecordAttr(attr, value)
		}
		if attr, ok := fieldmap.Location(column); ok {
			builder.setLocationAttr(attr, value)
		}
		if field, ok := fieldmap.Address(column); ok {
			builder.setAddressAttr(field, value)
		}
		if field, ok := fieldmap.Phone(column); ok {
			builder.setPhoneAttr(field, value)
		}
		if airsCoded, ok := fieldmap.Taxonomy(column); ok {
			builder.addTerms(taxonomy.Explode(value, airsCoded, vocabularyOverride))
		}
	}

	return builder.build()
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
