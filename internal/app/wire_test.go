package app

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/infra/db"
)

func TestNewRepositories(t *testing.T) {
	conn := &sql.DB{}

	for _, driver := range []db.Driver{db.DriverPostgres, db.DriverSQLite} {
		t.Run(string(driver), func(t *testing.T) {
			repos, err := NewRepositories(driver, conn)
			require.NoError(t, err)
			assert.NotNil(t, repos.Posts)
			assert.NotNil(t, repos.Groups)
			assert.NotNil(t, repos.Users)
			assert.NotNil(t, repos.Comments)
			assert.NotNil(t, repos.Follows)

			svc := NewServices(repos)
			assert.Same(t, svc.Listing.Posts, repos.Posts)
			assert.NotNil(t, svc.Posts)
			assert.NotNil(t, svc.Groups)
			assert.NotNil(t, svc.Follows)
			require.NotNil(t, svc.Posts.Accounts)
			assert.Same(t, svc.Posts.Accounts, svc.Follows.Accounts)
		})
	}

	_, err := NewRepositories(db.Driver("mysql"), conn)
	assert.Error(t, err)
}
