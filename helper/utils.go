package helper

import (
	"fmt"
	"strconv"
	"strings"
)

// AddQuotation returns str as a quoted DOT id
func AddQuotation(str string) string {
	return fmt.Sprintf("%q", str)
}

// TrimQuotation undoes AddQuotation, unquoted input is returned as is
func TrimQuotation(str string) string {
	if len(str) >= 2 && strings.HasPrefix(str, `"`) && strings.HasSuffix(str, `"`) {
		if s, err := strconv.Unquote(str); err == nil {
			return s
		}
		return str[1 : len(str)-1]
	}
	return str
}

// FormatFloat formats independent of locale, shortest exact representation
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatFixed formats with a fixed number of decimals
func FormatFixed(f float64, decimals int) string {
	return strconv.FormatFloat(f, 'f', decimals, 64)
}

// SplitFields splits on delimiter. Runs of spaces count as one space delimiter.
func SplitFields(line string, delimiter rune) []string {
	if delimiter == ' ' {
		return strings.FieldsFunc(line, func(r rune) bool { return r == ' ' })
	}
	fields := strings.Split(line, string(delimiter))
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func SliceContainsTarget(slice []string, target string) bool {
	for _, value := range slice {
		if value == target {
			return true
		}
	}
	return false
}
