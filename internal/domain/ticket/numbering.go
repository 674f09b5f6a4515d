package ticket

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// NumberGenerator hands out the next ticket number for a year. Implementations
// read the current maximum, so callers run them inside the creating transaction.
type NumberGenerator interface {
	Next(ctx context.Context, year int) (string, error)
}

// NumberPrefix is the "PREFIX-YYYY-" part shared by every number of a year.
func NumberPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s-%04d-", prefix, year)
}

// FormatNumber renders PREFIX-YYYY-NNNN. Sequences past 9999 keep growing in width.
func FormatNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s%04d", NumberPrefix(prefix, year), seq)
}

// ParseSequence extracts the trailing sequence of a number issued for year.
func ParseSequence(number, prefix string, year int) (int, error) {
	head := NumberPrefix(prefix, year)
	if !strings.HasPrefix(number, head) {
		return 0, fmt.Errorf("ticket number %q does not start with %q", number, head)
	}
	seq, err := strconv.Atoi(number[len(head):])
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("ticket number %q has no valid sequence", number)
	}
	return seq, nil
}
