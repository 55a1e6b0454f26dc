package middlewares

import (
	"encoding/base64"

	"book-review/constants"
	"book-review/models"
	"book-review/repositories"
	"book-review/services"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthRepo struct {
	users map[string]models.User
}

func (r *fakeAuthRepo) CreateUser(user models.User) error {
	return nil
}

func (r *fakeAuthRepo) UpsertUser(user models.User) error {
	return nil
}

func (r *fakeAuthRepo) FindAllUsers() (*[]models.User, error) {
	return &[]models.User{}, nil
}

func (r *fakeAuthRepo) FindUser(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func newAuthService() services.IAuthService {
	return services.NewAuthService(&fakeAuthRepo{users: map[string]models.User{
		"ldnel": {ID: "ldnel", Password: "secret", Role: constants.RoleAdmin},
		"frank": {ID: "frank", Password: "secret2", Role: constants.RoleGuest},
	}}, services.PlainPasswordHasher{})
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
