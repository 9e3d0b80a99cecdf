package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/timeutil"
)

const calendarWidth = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month containing `on`, highlighting days that have a
// journal entry.
func (pp *PrettyPrint) Calendar(on time.Time, entries ...*entry.Entry) {
	then := time.Date(on.Year(), on.Month(), 1, 1, 0, 0, 0, time.Local)
	written := make([]bool, DaysIn(then))
	for _, e := range entries {
		t, err := time.ParseInLocation(timeutil.LayoutISO, e.ID, time.Local)
		if err != nil {
			continue
		}
		if t.Year() == then.Year() && t.Month() == then.Month() {
			written[t.Day()-1] = true
		}
	}
	pp.printMonth(then, written)
}

// CalendarYear prints all twelve months of the year containing `on`.
func (pp *PrettyPrint) CalendarYear(on time.Time, entries ...*entry.Entry) {
	then := time.Date(on.Year(), 1, 1, 1, 0, 0, 0, time.Local)
	for i := 0; i < 12; i++ {
		pp.Calendar(then, entries...)
		then = then.AddDate(0, 1, 0)
	}
}

func (pp *PrettyPrint) printMonth(then time.Time, written []bool) {
	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (calendarWidth - len(m)) / 2
	_, _ = tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", calendarWidth-mid-len(m)))

	// Pad out the start of the month.
	d := StartDay(then)
	for i := time.Sunday; i < d; i++ {
		fmt.Print("   ")
	}

	blank := color.New(color.Faint, color.FgWhite)
	filled := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < DaysIn(then); i++ {
		if i < len(written) && written[i] {
			_, _ = filled.Printf("%2d ", i+1)
		} else {
			_, _ = blank.Printf("%2d ", i+1)
		}
		d++
		if d > time.Saturday {
			d = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

// DaysIn returns the number of days in the month containing then.
func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday the month containing then starts on.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.UTC().Year(), then.UTC().Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
