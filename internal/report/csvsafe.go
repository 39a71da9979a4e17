package report

// EscapeCell protects against CSV formula injection: listing titles and
// seller names are attacker-controlled text, and a leading '=', '+',
// '-' or '@' would otherwise execute when the report opens in a
// spreadsheet.
func EscapeCell(value string) string {
	if value == "" {
		return value
	}

	switch value[0] {
	case '=', '+', '-', '@', '|', '%', '\t', '\r', '\n':
		return "'" + value
	}

	return value
}

// EscapeRow escapes every cell in a row.
func EscapeRow(row []string) []string {
	escaped := make([]string, len(row))
	for i, cell := range row {
		escaped[i] = EscapeCell(cell)
	}
	return escaped
}
