package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/repository"
	"github.com/trygraphite/platter-sub000/utils"
)

// AuthService handles staff login and account creation.
type AuthService struct {
	staffRepo *repository.StaffRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.StaffRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{staffRepo: repo, jwtSecret: secret, jwtTTL: ttl}
}

type CreateStaffReq struct {
	Email           string           `json:"email" binding:"required,email"`
	Password        string           `json:"password" binding:"required,min=8"`
	Name            string           `json:"name" binding:"required"`
	Role            entity.StaffRole `json:"role" binding:"required,oneof=OPERATOR MANAGER ADMIN"`
	RestaurantID    uint             `json:"restaurantId" binding:"required"`
	ServicePointIDs []uint           `json:"servicePointIds"`
}

// CreateStaff registers a staff account. Service-point assignments only make
// sense for operators but are stored as given; the scoper ignores them for
// other roles anyway.
func (s *AuthService) CreateStaff(req *CreateStaffReq) (*entity.Staff, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	count, err := s.staffRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	staff := &entity.Staff{
		Email:        email,
		Password:     string(hashed),
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
	}
	for _, id := range req.ServicePointIDs {
		staff.ServicePoints = append(staff.ServicePoints, entity.ServicePoint{Model: gorm.Model{ID: id}})
	}

	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Login checks credentials and issues a JWT carrying id, role and restaurant.
func (s *AuthService) Login(email, password string) (string, *entity.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	staff, err := s.staffRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(staff.ID, string(staff.Role), staff.RestaurantID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, staff, nil
}

func (s *AuthService) GetProfile(staffID uint) (*entity.Staff, error) {
	return s.staffRepo.FindByID(staffID)
}
