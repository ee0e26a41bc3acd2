package collection

import (
	"fmt"
	"strings"

	"github.com/nhle/meeting-tracker/internal/model"
)

// table describes the columns of one collection. Column names double as
// JSON keys and sqlx db tags.
type table struct {
	name    string
	columns []string
}

var tables = map[string]table{
	model.CollectionMeetings: {
		name: model.CollectionMeetings,
		columns: []string{
			"id", "title", "description", "date", "duration",
			"attendees", "notes", "createdAt",
		},
	},
	model.CollectionTodos: {
		name: model.CollectionTodos,
		columns: []string{
			"id", "title", "description", "category", "priority",
			"status", "dueDate", "completedAt", "createdAt",
		},
	},
	model.CollectionLearnings: {
		name: model.CollectionLearnings,
		columns: []string{
			"id", "title", "type", "source", "notes",
			"status", "rating", "completedAt", "createdAt",
		},
	},
}

// immutableColumns are written on insert only.
var immutableColumns = map[string]bool{"id": true, "createdAt": true}

// tableFor returns the table backing record type T.
func tableFor[T model.Record]() table {
	var zero T
	t, ok := tables[zero.CollectionName()]
	if !ok {
		panic(fmt.Sprintf("collection: no table for %q", zero.CollectionName()))
	}
	return t
}

func (t table) has(column string) bool {
	for _, c := range t.columns {
		if c == column {
			return true
		}
	}
	return false
}

// checkOrder rejects order columns outside the table.
func (t table) checkOrder(orderBy string) error {
	if !t.has(orderBy) {
		return fmt.Errorf("cannot order %s by unknown column %q", t.name, orderBy)
	}
	return nil
}

func (t table) selectList() string {
	quoted := make([]string, len(t.columns))
	for i, c := range t.columns {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ", ")
}

func (t table) insertQuery() string {
	named := make([]string, len(t.columns))
	for i, c := range t.columns {
		named[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, t.selectList(), strings.Join(named, ", "))
}

func (t table) updateQuery() string {
	var sets []string
	for _, c := range t.columns {
		if immutableColumns[c] {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = :%s", quote(c), c))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE \"id\" = :id",
		t.name, strings.Join(sets, ", "))
}

// quote wraps a column in double quotes so camelCase names survive
// case folding in Postgres.
func quote(column string) string {
	return `"` + column + `"`
}
