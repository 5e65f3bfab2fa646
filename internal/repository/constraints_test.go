package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-user-api/internal/database"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/models"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestClassifyViolation(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		table          string
		wantKind       violationKind
		wantConstraint string
	}{
		{
			name: "postgres unique email",
			err: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: constraintUserEmail,
			},
			table:          "user",
			wantKind:       violationUnique,
			wantConstraint: constraintUserEmail,
		},
		{
			name: "postgres foreign key",
			err: &pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "fk_user_organization_organization",
			},
			table:          "user_organization",
			wantKind:       violationForeignKey,
			wantConstraint: "fk_user_organization_organization",
		},
		{
			name:     "postgres not null",
			err:      &pgconn.PgError{Code: pgerrcode.NotNullViolation},
			table:    "user",
			wantKind: violationOther,
		},
		{
			name:     "postgres syntax error",
			err:      &pgconn.PgError{Code: pgerrcode.SyntaxError},
			table:    "user",
			wantKind: violationNone,
		},
		{
			name: "mysql 8 unique cognito id",
			err: &mysql.MySQLError{
				Number:  1062,
				Message: "Duplicate entry 'alice' for key 'user.ix_user_cognito_user_id'",
			},
			table:          "user",
			wantKind:       violationUnique,
			wantConstraint: constraintUserCognitoUserID,
		},
		{
			name: "mysql primary key",
			err: &mysql.MySQLError{
				Number:  1062,
				Message: "Duplicate entry '5' for key 'PRIMARY'",
			},
			table:          "user",
			wantKind:       violationUnique,
			wantConstraint: constraintUserPrimaryKey,
		},
		{
			name: "mysql foreign key",
			err: &mysql.MySQLError{
				Number:  1452,
				Message: "Cannot add or update a child row: a foreign key constraint fails (`app`.`user_organization`, CONSTRAINT `fk_user_organization_organization` FOREIGN KEY (`organization_id`) REFERENCES `organization` (`id`))",
			},
			table:          "user_organization",
			wantKind:       violationForeignKey,
			wantConstraint: "fk_user_organization_organization",
		},
		{
			name:     "unrelated error",
			err:      context.DeadlineExceeded,
			table:    "user",
			wantKind: violationNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := classifyViolation(tt.err, tt.table)
			require.Equal(t, tt.wantKind, v.kind)
			require.Equal(t, tt.wantConstraint, v.constraint)
		})
	}
}

func TestPrimaryKeyFromDetail(t *testing.T) {
	require.Equal(t, "12", primaryKeyFromDetail("Key (id)=(12) already exists."))
	require.Equal(t, "5", primaryKeyFromDetail("Duplicate entry '5' for key 'user.PRIMARY'"))
	require.Equal(t, "", primaryKeyFromDetail("UNIQUE constraint failed: user.id"))
}

func openMock(t *testing.T, open func(conn gorm.ConnPool) gorm.Dialector) (*database.UnitOfWork, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(open(sqlDB), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return database.NewUnitOfWork(db), mock
}

func createThroughMock(uow *database.UnitOfWork, user *models.User) error {
	repo := NewUserRepository(uow, NewUserOrganizationRepository(uow, zap.NewNop()), nil, zap.NewNop())
	return uow.Transaction(context.Background(), func(tx *gorm.DB) error {
		return repo.Create(tx, user)
	})
}

func TestUserRepository_CreatePostgresViolations(t *testing.T) {
	tests := []struct {
		name        string
		pgErr       *pgconn.PgError
		wantDup     bool
		wantMessage string
	}{
		{
			name:        "email",
			pgErr:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "ix_user_email"},
			wantDup:     true,
			wantMessage: "alice@example.com",
		},
		{
			name:        "cognito user id",
			pgErr:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "ix_user_cognito_user_id"},
			wantDup:     true,
			wantMessage: "alice",
		},
		{
			name: "primary key",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "user_pkey",
				Detail:         "Key (id)=(31) already exists.",
			},
			wantDup:     true,
			wantMessage: "id=31",
		},
		{
			name:  "check violation",
			pgErr: &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "user_email_check"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow, mock := openMock(t, func(conn gorm.ConnPool) gorm.Dialector {
				return postgres.New(postgres.Config{Conn: conn})
			})
			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "user"`)).WillReturnError(tt.pgErr)
			mock.ExpectRollback()

			err := createThroughMock(uow, &models.User{
				CognitoUserID: "alice",
				DisplayName:   "Alice",
				Email:         "alice@example.com",
			})

			if tt.wantDup {
				var dupErr *apierrors.DuplicateError
				require.ErrorAs(t, err, &dupErr)
				require.Contains(t, dupErr.Message, tt.wantMessage)
			} else {
				var unrecoverable *apierrors.UnrecoverableError
				require.ErrorAs(t, err, &unrecoverable)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_CreateMySQLViolations(t *testing.T) {
	uow, mock := openMock(t, func(conn gorm.ConnPool) gorm.Dialector {
		return gormmysql.New(gormmysql.Config{Conn: conn, SkipInitializeWithVersion: true})
	})
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `user`")).WillReturnError(&mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'alice@example.com' for key 'user.ix_user_email'",
	})
	mock.ExpectRollback()

	err := createThroughMock(uow, &models.User{
		CognitoUserID: "alice",
		DisplayName:   "Alice",
		Email:         "alice@example.com",
	})

	var dupErr *apierrors.DuplicateError
	require.ErrorAs(t, err, &dupErr)
	require.Contains(t, dupErr.Message, "alice@example.com")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserOrganizationRepository_CreatePostgresForeignKey(t *testing.T) {
	uow, mock := openMock(t, func(conn gorm.ConnPool) gorm.Dialector {
		return postgres.New(postgres.Config{Conn: conn})
	})
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "user_organization"`)).WillReturnError(&pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		ConstraintName: "fk_user_organization_organization",
	})
	mock.ExpectRollback()

	repo := NewUserOrganizationRepository(uow, zap.NewNop())
	err := uow.Transaction(context.Background(), func(tx *gorm.DB) error {
		_, err := repo.Create(tx, 3, 8, models.RoleMember)
		return err
	})

	var notFound *apierrors.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, uint64(8), notFound.EntityID)
	require.Contains(t, notFound.Message, "user_id=3")
	require.NoError(t, mock.ExpectationsWereMet())
}
