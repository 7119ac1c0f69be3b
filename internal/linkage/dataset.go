// Package linkage joins a source table to a reference table by fuzzy
// similarity of one text field on each side.
package linkage

// Record is one row, aligned with its Dataset's Columns. A nil cell is null.
type Record []any

// Dataset is an ordered table. Records are never mutated by this package.
type Dataset struct {
	Name    string
	Columns []string
	Records []Record
}

// Column returns the position of name, or -1.
func (d Dataset) Column(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (d Dataset) Len() int { return len(d.Records) }

func (r Record) field(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}
