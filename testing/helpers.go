// Package testing provides test utilities for sqlchain.
package testing

import (
	"strings"
	"testing"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/sqlchain"
)

// Schema returns the fixture schema used across sqlchain tests.
// Includes users, orders, customers, posts, and products tables.
func Schema(t testing.TB) *dbml.Project {
	t.Helper()

	project := dbml.NewProject("fixture")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("name", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("role", "varchar"))
	users.AddColumn(dbml.NewColumn("deleted_at", "timestamp"))
	project.AddTable(users)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("customer_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	customers := dbml.NewTable("customers")
	customers.AddColumn(dbml.NewColumn("id", "bigint"))
	customers.AddColumn(dbml.NewColumn("name", "varchar"))
	customers.AddColumn(dbml.NewColumn("country", "varchar"))
	project.AddTable(customers)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("published", "boolean"))
	project.AddTable(posts)

	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("price", "numeric"))
	products.AddColumn(dbml.NewColumn("category", "varchar"))
	project.AddTable(products)

	return project
}

// AssertColumnsExist fails the test unless every column exists on table in
// project. "*" always matches.
func AssertColumnsExist(t testing.TB, project *dbml.Project, table string, columns ...string) {
	t.Helper()

	known := make(map[string]bool)
	found := false
	for _, tbl := range project.Tables {
		if tbl.Name != table {
			continue
		}
		found = true
		for _, col := range tbl.Columns {
			known[col.Name] = true
		}
	}
	if !found {
		t.Fatalf("Table %q not in schema", table)
	}
	for _, c := range columns {
		if c != "*" && !known[c] {
			t.Errorf("Column %q not in table %q", c, table)
		}
	}
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t testing.TB, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertParams checks that actual holds the values of expected, in order.
// Expected entries are converted with sqlchain.ValueOf.
func AssertParams(t testing.TB, expected []any, actual []sqlchain.Value) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("Param count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), len(actual), expected, actual)
		return
	}
	for i, e := range expected {
		want := sqlchain.ValueOf(e)
		if !want.Equal(actual[i]) {
			t.Errorf("Param %d mismatch: expected %s (%s), got %s (%s)",
				i, want, want.Kind(), actual[i], actual[i].Kind())
		}
	}
}

// AssertPlaceholderAlignment checks that sql holds exactly one ? per parameter.
func AssertPlaceholderAlignment(t testing.TB, sql string, params []sqlchain.Value) {
	t.Helper()
	if n := strings.Count(sql, "?"); n != len(params) {
		t.Errorf("Placeholder mismatch: %d placeholders, %d params\nSQL: %s", n, len(params), sql)
	}
}

// AssertRenders renders stmt and checks its SQL, parameters, and alignment.
func AssertRenders(t testing.TB, stmt sqlchain.Statement, expectedSQL string, expectedParams ...any) {
	t.Helper()
	res, err := sqlchain.Render(stmt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	AssertSQL(t, expectedSQL, res.SQL)
	AssertParams(t, expectedParams, res.Params)
	AssertPlaceholderAlignment(t, res.SQL, res.Params)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substr.
func AssertErrorContains(t testing.TB, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}
