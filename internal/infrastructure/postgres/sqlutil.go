package postgres

import "strconv"

// itoa shortens positional-placeholder construction in dynamic queries.
func itoa(n int) string { return strconv.Itoa(n) }
