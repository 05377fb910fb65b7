// Package table provides an ordered, immutable collection of string-keyed
// records with the relational operations the query engine is built on.
// Every operation returns a fresh Table; loaded tables are never mutated.
package table

import (
	"sort"
	"strconv"
)

// Row is one flat record. Values are kept as the strings they were loaded
// as; numeric interpretation only happens inside SortBy.
type Row map[string]string

type Table struct {
	rows []Row
}

// New wraps the given rows. The slice is owned by the table afterwards.
func New(rows []Row) *Table {
	return &Table{rows: rows}
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Rows exposes the backing rows. Callers must not modify them.
func (t *Table) Rows() []Row {
	return t.rows
}

// First returns the first row, if any.
func (t *Table) First() (Row, bool) {
	if len(t.rows) == 0 {
		return nil, false
	}
	return t.rows[0], true
}

// Filter keeps the rows satisfying pred, preserving order.
func (t *Table) Filter(pred func(Row) bool) *Table {
	out := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return &Table{rows: out}
}

// Where is shorthand for an equality filter on a single column.
func (t *Table) Where(key, value string) *Table {
	return t.Filter(func(r Row) bool { return r[key] == value })
}

// Select projects each row onto the given columns. Columns a row does not
// have are omitted from that row rather than filled with empties.
func (t *Table) Select(cols ...string) *Table {
	out := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		proj := make(Row, len(cols))
		for _, c := range cols {
			if v, ok := r[c]; ok {
				proj[c] = v
			}
		}
		out = append(out, proj)
	}
	return &Table{rows: out}
}

// Join performs an inner equality join on key: for each left row, one merged
// row per matching right row, with right-hand fields overriding same-named
// left-hand fields. Left rows with no match are dropped. The scan is a
// nested O(n*m) pass, so joins are correct regardless of row order.
func (t *Table) Join(other *Table, key string) *Table {
	return t.join(other, key, false)
}

// JoinKeepUnmatched is Join, except a left row with zero right matches is
// emitted unmerged instead of dropped.
func (t *Table) JoinKeepUnmatched(other *Table, key string) *Table {
	return t.join(other, key, true)
}

func (t *Table) join(other *Table, key string, keepUnmatched bool) *Table {
	out := make([]Row, 0, len(t.rows))
	for _, left := range t.rows {
		lv, lok := left[key]
		matched := false
		if lok {
			for _, right := range other.rows {
				if rv, rok := right[key]; rok && rv == lv {
					matched = true
					merged := make(Row, len(left)+len(right))
					for k, v := range left {
						merged[k] = v
					}
					for k, v := range right {
						merged[k] = v
					}
					out = append(out, merged)
				}
			}
		}
		if !matched && keepUnmatched {
			out = append(out, left)
		}
	}
	return &Table{rows: out}
}

// DistinctBy deduplicates by the value of key, first occurrence wins,
// order preserved.
func (t *Table) DistinctBy(key string) *Table {
	seen := make(map[string]struct{}, len(t.rows))
	out := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		v := r[key]
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, r)
	}
	return &Table{rows: out}
}

// SortBy stable-sorts ascending by the value of key. Values are compared
// numerically when both sides parse as numbers, lexicographically otherwise.
func (t *Table) SortBy(key string) *Table {
	return t.sortBy(key, true)
}

// SortByDesc stable-sorts descending by the value of key.
func (t *Table) SortByDesc(key string) *Table {
	return t.sortBy(key, false)
}

func (t *Table) sortBy(key string, ascending bool) *Table {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	sort.SliceStable(out, func(i, j int) bool {
		less := valueLess(out[i][key], out[j][key])
		if ascending {
			return less
		}
		return valueLess(out[j][key], out[i][key])
	})
	return &Table{rows: out}
}

func valueLess(a, b string) bool {
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	if aerr == nil && berr == nil {
		return af < bf
	}
	return a < b
}

// Concat appends other's rows after t's, preserving both orders.
func (t *Table) Concat(other *Table) *Table {
	out := make([]Row, 0, len(t.rows)+len(other.rows))
	out = append(out, t.rows...)
	out = append(out, other.rows...)
	return &Table{rows: out}
}
