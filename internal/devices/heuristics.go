package devices

import (
	"encoding/json"
	"strings"
)

// lacpTokens identify link-aggregation related interface records.
var lacpTokens = []string{"lacp", "bundle", "lag"}

// typedCategories is the filename classification order; the first category
// whose name appears in the filename wins.
var typedCategories = []string{CategoryInterfaces, CategoryLldp, CategorySystem}

// IsLacpRecord reports whether a record looks LACP related: the
// case-insensitive substring test runs over the JSON serialization of the
// whole record, not over specific fields. That breadth is intentional and
// matches how captures from mixed device families name their aggregation
// fields, but it also means a token buried in free text (say, a description
// containing "lag") matches. Known limitation of the heuristic.
func IsLacpRecord(record Record) bool {
	data, err := json.Marshal(record)
	if err != nil {
		return false
	}
	serialized := strings.ToLower(string(data))
	for _, token := range lacpTokens {
		if strings.Contains(serialized, token) {
			return true
		}
	}
	return false
}

// FilterLacpRecords returns the subset of records matched by IsLacpRecord,
// preserving order.
func FilterLacpRecords(records []Record) []Record {
	var matched []Record
	for _, record := range records {
		if IsLacpRecord(record) {
			matched = append(matched, record)
		}
	}
	return matched
}

// classifyCategory infers the data category of a snapshot file from its
// name, case-insensitively. The second return is false for files that
// belong to no typed category; those are kept as opaque buckets under
// their literal filename.
func classifyCategory(filename string) (string, bool) {
	lower := strings.ToLower(filename)
	for _, category := range typedCategories {
		if strings.Contains(lower, category) {
			return category, true
		}
	}
	return "", false
}
