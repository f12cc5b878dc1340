package semicsv

// indexUnquoted returns the index of the first c in raw[pos:end] that is not inside a quoted
// section, or end when there is none.
//
// A quote toggles the quoted state unless the next byte (still before end) is also a quote; that
// pair is an escaped quote and is skipped as a whole. An unbalanced quote therefore hides every
// later c up to end.
func indexUnquoted(raw string, pos, end int, c byte) int {
	quoted := false
	for ; pos < end; pos++ {
		switch b := raw[pos]; {
		case b == quote:
			if pos+1 < end && raw[pos+1] == quote {
				pos++
				continue
			}
			quoted = !quoted
		case !quoted && b == c:
			return pos
		}
	}
	return end
}

// parse splits raw into rows on unquoted terminators and each row into decoded fields.
func parse(raw string, sep, term byte) []Row {
	var rows []Row
	for pos, end := 0, len(raw); pos < end; {
		rowEnd := indexUnquoted(raw, pos, end, term)
		rows = append(rows, parseRow(raw, pos, rowEnd, sep))
		pos = rowEnd + 1
	}
	return rows
}

// parseRow decodes the fields of raw[pos:end]. Zero-length fields are dropped, not kept as "".
func parseRow(raw string, pos, end int, sep byte) Row {
	row := make(Row, 0, 8)
	for pos < end {
		fieldEnd := indexUnquoted(raw, pos, end, sep)
		if fieldEnd > pos {
			row = append(row, Decode(raw[pos:fieldEnd]))
		}
		pos = fieldEnd + 1
	}
	return row
}
