// Package app assembles repositories and use case services for a database driver.
package app

import (
	"fmt"

	"yatube/internal/infra/adapter/persistence/postgres"
	"yatube/internal/infra/adapter/persistence/sqlite"
	"yatube/internal/infra/db"
	"yatube/internal/repository"
	followUC "yatube/internal/usecase/follow"
	groupUC "yatube/internal/usecase/group"
	"yatube/internal/usecase/listing"
	postUC "yatube/internal/usecase/post"
	userUC "yatube/internal/usecase/user"
)

// Repositories groups the storage ports of one database.
type Repositories struct {
	Posts    repository.PostRepository
	Groups   repository.GroupRepository
	Users    repository.UserRepository
	Comments repository.CommentRepository
	Follows  repository.FollowRepository
}

// NewRepositories returns the adapters for driver over conn.
func NewRepositories(driver db.Driver, conn repository.DBTX) (Repositories, error) {
	switch driver {
	case db.DriverPostgres:
		return Repositories{
			Posts:    postgres.NewPostRepo(conn),
			Groups:   postgres.NewGroupRepo(conn),
			Users:    postgres.NewUserRepo(conn),
			Comments: postgres.NewCommentRepo(conn),
			Follows:  postgres.NewFollowRepo(conn),
		}, nil
	case db.DriverSQLite:
		return Repositories{
			Posts:    sqlite.NewPostRepo(conn),
			Groups:   sqlite.NewGroupRepo(conn),
			Users:    sqlite.NewUserRepo(conn),
			Comments: sqlite.NewCommentRepo(conn),
			Follows:  sqlite.NewFollowRepo(conn),
		}, nil
	default:
		return Repositories{}, fmt.Errorf("unsupported driver %q", driver)
	}
}

// Services groups the use case services.
type Services struct {
	Listing *listing.Service
	Posts   *postUC.Service
	Groups  *groupUC.Service
	Follows *followUC.Service
}

// NewServices builds every service over repos. Posts and follows share one
// user service so first writes register the author the same way.
func NewServices(repos Repositories) Services {
	users := &userUC.Service{Repo: repos.Users}
	return Services{
		Listing: &listing.Service{Posts: repos.Posts, Groups: repos.Groups, Users: repos.Users},
		Posts: &postUC.Service{
			Posts:    repos.Posts,
			Comments: repos.Comments,
			Groups:   repos.Groups,
			Accounts: users,
		},
		Groups:  &groupUC.Service{Repo: repos.Groups},
		Follows: &followUC.Service{Follows: repos.Follows, Accounts: users},
	}
}
