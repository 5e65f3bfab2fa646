package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-user-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMySQLTimestampsKeepMicroseconds(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysqlDialector(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	for _, model := range []interface{}{&models.Organization{}, &models.User{}, &models.UserOrganization{}} {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(model))

		for _, name := range []string{"CreatedAt", "UpdatedAt"} {
			field := stmt.Schema.LookUpField(name)
			require.NotNil(t, field, "%s.%s", stmt.Schema.Table, name)
			require.Regexp(t, `^datetime\(6\)`, db.Dialector.DataTypeOf(field),
				"%s.%s", stmt.Schema.Table, name)
		}
	}
}
