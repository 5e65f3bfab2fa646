package repository

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Constraint names shared by every supported driver. PostgreSQL reports them
// directly; MySQL and SQLite reports are normalized onto them.
const (
	constraintUserEmail            = "ix_user_email"
	constraintUserCognitoUserID    = "ix_user_cognito_user_id"
	constraintUserPrimaryKey       = "user_pkey"
	constraintUserOrganizationPKey = "user_organization_pkey"
)

type violationKind int

const (
	violationNone violationKind = iota
	violationUnique
	violationForeignKey
	violationOther
)

// violation is the driver-independent shape of an integrity constraint failure.
type violation struct {
	kind       violationKind
	constraint string
	detail     string
}

// MySQL server error numbers.
const (
	mysqlDupEntry           = 1062
	mysqlNoReferencedRow    = 1216
	mysqlRowIsReferenced    = 1217
	mysqlRowIsReferenced2   = 1451
	mysqlNoReferencedRow2   = 1452
	mysqlBadNull            = 1048
	mysqlCheckConstraintErr = 3819
)

var (
	mysqlDuplicateKey = regexp.MustCompile(`for key '([^']+)'`)
	mysqlForeignKey   = regexp.MustCompile("CONSTRAINT `([^`]+)`")
	primaryKeyValue   = []*regexp.Regexp{
		regexp.MustCompile(`Key \(id\)=\((\d+)\)`),
		regexp.MustCompile(`Duplicate entry '(\d+)' for key '(?:[^'.]+\.)?PRIMARY'`),
	}
)

// sqliteColumnConstraints maps the column list SQLite names in a constraint
// failure to the constraint name the other drivers report.
var sqliteColumnConstraints = map[string]string{
	"user.email":           constraintUserEmail,
	"user.cognito_user_id": constraintUserCognitoUserID,
	"user.id":              constraintUserPrimaryKey,
	"user_organization.user_id, user_organization.organization_id": constraintUserOrganizationPKey,
}

// classifyViolation extracts an integrity violation from a driver error.
// table qualifies anonymous primary keys (MySQL reports them as PRIMARY).
func classifyViolation(err error, table string) violation {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return classifyMySQL(myErr, table)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return classifySQLite(liteErr)
	}

	return violation{kind: violationNone}
}

func classifyPostgres(pgErr *pgconn.PgError) violation {
	v := violation{constraint: pgErr.ConstraintName, detail: pgErr.Detail}
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		v.kind = violationUnique
	case pgErr.Code == pgerrcode.ForeignKeyViolation:
		v.kind = violationForeignKey
	case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
		v.kind = violationOther
	default:
		v.kind = violationNone
	}
	return v
}

func classifyMySQL(myErr *mysql.MySQLError, table string) violation {
	v := violation{detail: myErr.Message}
	switch myErr.Number {
	case mysqlDupEntry:
		v.kind = violationUnique
		if m := mysqlDuplicateKey.FindStringSubmatch(myErr.Message); m != nil {
			key := m[1]
			// MySQL 8 prefixes the key with the table name.
			if i := strings.LastIndex(key, "."); i >= 0 {
				key = key[i+1:]
			}
			if key == "PRIMARY" {
				key = table + "_pkey"
			}
			v.constraint = key
		}
	case mysqlNoReferencedRow, mysqlNoReferencedRow2, mysqlRowIsReferenced, mysqlRowIsReferenced2:
		v.kind = violationForeignKey
		if m := mysqlForeignKey.FindStringSubmatch(myErr.Message); m != nil {
			v.constraint = m[1]
		}
	case mysqlBadNull, mysqlCheckConstraintErr:
		v.kind = violationOther
	default:
		v.kind = violationNone
	}
	return v
}

func classifySQLite(liteErr sqlite3.Error) violation {
	if liteErr.Code != sqlite3.ErrConstraint {
		return violation{kind: violationNone}
	}

	v := violation{detail: liteErr.Error()}
	switch liteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		v.kind = violationUnique
		_, columns, found := strings.Cut(liteErr.Error(), "constraint failed: ")
		if found {
			v.constraint = sqliteColumnConstraints[strings.TrimSpace(columns)]
		}
	case sqlite3.ErrConstraintForeignKey:
		v.kind = violationForeignKey
	default:
		v.kind = violationOther
	}
	return v
}

// primaryKeyFromDetail pulls the colliding id out of a duplicate primary key
// report. It returns an empty string when the driver does not include it.
func primaryKeyFromDetail(detail string) string {
	for _, re := range primaryKeyValue {
		if m := re.FindStringSubmatch(detail); m != nil {
			return m[1]
		}
	}
	return ""
}
