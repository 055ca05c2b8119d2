package billing

import (
	"fmt"
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`\d+`)

// sequenceWidth is the minimum zero padded width of the numeric part.
const sequenceWidth = 4

// LastSequence extracts the last run of digits in a document number.
// It returns false when the number carries no digits or the run does not fit in an int64.
func LastSequence(documentNumber string) (int64, bool) {
	runs := digitRun.FindAllString(documentNumber, -1)
	if len(runs) == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(runs[len(runs)-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatDocumentNumber renders prefix + zero padded sequence ("INV-0042").
func FormatDocumentNumber(prefix string, sequence int64) string {
	return fmt.Sprintf("%s%0*d", prefix, sequenceWidth, sequence)
}

// NextDocumentNumber derives the number following lastNumber. An empty or digitless
// lastNumber starts the series at 0001.
func NextDocumentNumber(prefix string, lastNumber string) string {
	last, _ := LastSequence(lastNumber)
	return FormatDocumentNumber(prefix, last+1)
}

// NextSequence returns the value to issue given the stored counter and the last persisted number.
// Taking the maximum keeps issuance monotonic even if rows were written outside the counter.
func NextSequence(counter int64, lastNumber string) int64 {
	next := counter
	if last, ok := LastSequence(lastNumber); ok && last > next {
		next = last
	}
	return next + 1
}
