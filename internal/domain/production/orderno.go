package production

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Order numbers are human-readable daily-sequenced keys of the form
// PO-YYYYMMDD-NNNN, e.g. PO-20260830-0001. The sequence restarts at 0001
// each calendar day.
const orderNoPrefix = "PO"

// OrderNoPrefixForDate returns the prefix shared by all order numbers of a
// given day, e.g. "PO-20260830-"
func OrderNoPrefixForDate(date time.Time) string {
	return fmt.Sprintf("%s-%s-", orderNoPrefix, date.Format("20060102"))
}

// FormatOrderNo formats a day + sequence into an order number. Sequences are
// zero-padded to four digits but keep growing past 9999.
func FormatOrderNo(date time.Time, sequence int) string {
	return fmt.Sprintf("%s%04d", OrderNoPrefixForDate(date), sequence)
}

// ParseOrderNoSequence extracts the numeric sequence from an order number.
// Returns 0 when the order number does not match the expected shape.
func ParseOrderNoSequence(orderNo string) int {
	idx := strings.LastIndex(orderNo, "-")
	if idx < 0 || idx == len(orderNo)-1 {
		return 0
	}
	seq, err := strconv.Atoi(orderNo[idx+1:])
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}
