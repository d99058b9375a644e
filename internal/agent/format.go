package agent

import "time"

// FormatDate renders a YYYY-MM-DD date as "January 02, 2006" ("display") or
// "01/02/2006" ("short"). Unparseable input is returned unchanged.
func FormatDate(date, format string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	switch format {
	case "display":
		return t.Format("January 02, 2006")
	case "short":
		return t.Format("01/02/2006")
	default:
		return date
	}
}
