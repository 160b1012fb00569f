package exec

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Dialect describes how a database binds parameters and names savepoints.
type Dialect struct {
	// Name is the db.system value reported in logs, spans and metrics.
	Name string

	// BindType is the sqlx placeholder style.
	BindType int

	Capabilities Capabilities

	savepoint  string
	rollbackTo string
	release    string
}

var (
	Postgres = Dialect{
		Name:     "postgresql",
		BindType: sqlx.DOLLAR,
		Capabilities: Capabilities{
			CaseInsensitiveLike: true,
			LimitOffset:         true,
		},
		savepoint:  "SAVEPOINT %s",
		rollbackTo: "ROLLBACK TO SAVEPOINT %s",
		release:    "RELEASE SAVEPOINT %s",
	}
	MySQL = Dialect{
		Name:         "mysql",
		BindType:     sqlx.QUESTION,
		Capabilities: Capabilities{LimitOffset: true},
		savepoint:    "SAVEPOINT %s",
		rollbackTo:   "ROLLBACK TO SAVEPOINT %s",
		release:      "RELEASE SAVEPOINT %s",
	}
	SQLite = Dialect{
		Name:         "sqlite",
		BindType:     sqlx.QUESTION,
		Capabilities: Capabilities{LimitOffset: true},
		savepoint:    "SAVEPOINT %s",
		rollbackTo:   "ROLLBACK TO SAVEPOINT %s",
		release:      "RELEASE SAVEPOINT %s",
	}
	// SQLServer has no release statement; releasing a savepoint is a no-op.
	SQLServer = Dialect{
		Name:       "mssql",
		BindType:   sqlx.AT,
		savepoint:  "SAVE TRANSACTION %s",
		rollbackTo: "ROLLBACK TRANSACTION %s",
	}
)

// DialectFor maps a database/sql driver name onto its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "sqlserver", "mssql":
		return SQLServer, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported driver %q", driver)
	}
}

// SavepointSQL returns the statement that creates savepoint name.
func (d Dialect) SavepointSQL(name string) (string, error) {
	return d.savepointStmt(d.savepoint, name)
}

// RollbackToSQL returns the statement that rolls back to savepoint name.
func (d Dialect) RollbackToSQL(name string) (string, error) {
	return d.savepointStmt(d.rollbackTo, name)
}

// ReleaseSQL returns the statement that releases savepoint name, or "" when
// the dialect has none.
func (d Dialect) ReleaseSQL(name string) (string, error) {
	return d.savepointStmt(d.release, name)
}

func (d Dialect) savepointStmt(format, name string) (string, error) {
	if !isValidSavepointName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSavepoint, name)
	}
	if format == "" {
		return "", nil
	}
	return fmt.Sprintf(format, name), nil
}

// Only allows alphanumeric characters and underscores, must not start with a digit.
func isValidSavepointName(name string) bool {
	if name == "" || len(name) > 63 {
		return false
	}

	first := name[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	for i := 1; i < len(name); i++ {
		ch := name[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}
	return true
}
