package repositories

import (
	"errors"
	"strings"

	"book-review/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound = errors.New("User not found")
	ErrUserExists   = errors.New("User already exists")
)

type IAuthRepository interface {
	CreateUser(user models.User) error
	UpsertUser(user models.User) error
	FindUser(id string) (*models.User, error)
	FindAllUsers() (*[]models.User, error)
}

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) IAuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) CreateUser(user models.User) error {
	result := r.db.Create(&user)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return ErrUserExists
		}
		return result.Error
	}
	return nil
}

// UpsertUser は同じIDのユーザーがいれば上書きする（シード用）
func (r *AuthRepository) UpsertUser(user models.User) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"password", "role"}),
	}).Create(&user)
	return result.Error
}

func (r *AuthRepository) FindUser(id string) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *AuthRepository) FindAllUsers() (*[]models.User, error) {
	var users []models.User
	result := r.db.Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return &users, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "UNIQUE constraint")
}
