package format

import "fmt"

// TruncateWithEllipsis truncates a string to maxWidth characters, appending "..."
// if the string exceeds the limit. If maxWidth is less than 4, the string
// is hard-truncated without an ellipsis suffix.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}

	if maxWidth < 4 {
		return string(runes[:maxWidth])
	}

	return string(runes[:maxWidth-3]) + "..."
}

// Percent formats a usage percentage with one decimal, e.g. "23.5%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Bytes formats a byte count in decimal units with one decimal: "494.4 GB",
// "512.0 MB". Zero renders as "-" since it means the size is unknown.
func Bytes(n uint64) string {
	const (
		kb = 1000
		mb = kb * 1000
		gb = mb * 1000
		tb = gb * 1000
	)
	switch {
	case n == 0:
		return "-"
	case n >= tb:
		return fmt.Sprintf("%.1f TB", float64(n)/tb)
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
