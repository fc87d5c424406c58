package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

// SignupRequest registers an employee account. Roles carries short
// keywords ("admin", "driver"); anything else maps to employee, and an
// empty list defaults to employee.
type SignupRequest struct {
	EmployeeID       string     `json:"employee_id" binding:"required"`
	Username         string     `json:"username" binding:"required"`
	Email            string     `json:"email" binding:"required,email"`
	Password         string     `json:"password" binding:"required"`
	Roles            []string   `json:"roles"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	JoiningDate      *time.Time `json:"joining_date"`
	EmergencyContact string     `json:"emergency_contact"`
	Status           string     `json:"status"`
}

// UserUpdateRequest mutates an existing account. Status, Roles and
// Password only change when supplied.
type UserUpdateRequest struct {
	Username         string     `json:"username" binding:"required"`
	Email            string     `json:"email" binding:"required,email"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	JoiningDate      *time.Time `json:"joining_date"`
	EmergencyContact string     `json:"emergency_contact"`
	Status           string     `json:"status"`
	Roles            []string   `json:"roles"`
	Password         string     `json:"password"`
}

type UserService struct {
	repo repository.Repository
}

func NewUserService(repo repository.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.Users().FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found with id: %d", id)
	}
	return user, nil
}

func (s *UserService) Register(ctx context.Context, req SignupRequest) (*models.User, error) {
	if err := s.checkUniqueness(ctx, req); err != nil {
		return nil, err
	}
	user, err := s.buildUser(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterBulk pre-validates every row before creating any, so a bad
// row midway through an import leaves nothing behind.
func (s *UserService) RegisterBulk(ctx context.Context, reqs []SignupRequest) ([]models.User, error) {
	for _, req := range reqs {
		if err := s.checkUniqueness(ctx, req); err != nil {
			return nil, err
		}
	}

	var created []models.User
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		for _, req := range reqs {
			user, err := s.buildUser(ctx, req)
			if err != nil {
				return err
			}
			if err := r.Users().Create(ctx, user); err != nil {
				return err
			}
			created = append(created, *user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *UserService) checkUniqueness(ctx context.Context, req SignupRequest) error {
	taken, err := s.repo.Users().ExistsByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("username %q is already taken", req.Username)
	}
	taken, err = s.repo.Users().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("email %q is already in use", req.Email)
	}
	if req.EmployeeID != "" {
		taken, err = s.repo.Users().ExistsByEmployeeID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("employee id %q is already in use", req.EmployeeID)
		}
	}
	return nil
}

func (s *UserService) buildUser(ctx context.Context, req SignupRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	roles, err := s.resolveRoles(ctx, req.Roles)
	if err != nil {
		return nil, err
	}

	status := models.StatusActive
	if req.Status != "" {
		parsed, ok := models.ParseEmployeeStatus(req.Status)
		if !ok {
			return nil, apperr.Invalid("unknown employee status: %s", req.Status)
		}
		status = parsed
	}

	return &models.User{
		EmployeeID:       req.EmployeeID,
		Username:         req.Username,
		Email:            req.Email,
		Password:         string(hash),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Address:          req.Address,
		DateOfBirth:      req.DateOfBirth,
		JoiningDate:      req.JoiningDate,
		EmergencyContact: req.EmergencyContact,
		Status:           status,
		Roles:            roles,
	}, nil
}

// resolveRoles maps keyword lists to seeded role rows; an empty list
// grants the default employee role.
func (s *UserService) resolveRoles(ctx context.Context, names []string) ([]models.Role, error) {
	if len(names) == 0 {
		names = []string{"employee"}
	}
	seen := make(map[models.RoleName]bool)
	var roles []models.Role
	for _, name := range names {
		rn := models.RoleNameFromInput(name)
		if seen[rn] {
			continue
		}
		seen[rn] = true
		role, err := s.repo.Roles().FindByName(ctx, rn)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, apperr.NotFound("role %s not found, was the role seed run?", rn)
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req UserUpdateRequest) (*models.User, error) {
	user, err := s.repo.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found with id: %d", id)
	}

	if user.Email != req.Email {
		taken, err := s.repo.Users().ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("email %q is already in use", req.Email)
		}
	}
	if user.Username != req.Username {
		taken, err := s.repo.Users().ExistsByUsername(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("username %q is already in use", req.Username)
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.Address = req.Address
	user.DateOfBirth = req.DateOfBirth
	user.JoiningDate = req.JoiningDate
	user.EmergencyContact = req.EmergencyContact

	if req.Status != "" {
		parsed, ok := models.ParseEmployeeStatus(req.Status)
		if !ok {
			return nil, apperr.Invalid("unknown employee status: %s", req.Status)
		}
		user.Status = parsed
	}
	if len(req.Roles) > 0 {
		roles, err := s.resolveRoles(ctx, req.Roles)
		if err != nil {
			return nil, err
		}
		user.Roles = roles
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.repo.Users().Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Users().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("user not found with id: %d", id)
	}
	return s.repo.Users().Delete(ctx, id)
}

// Authenticate verifies a username/password pair and returns the
// account. Failures are deliberately indistinct.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Invalid("incorrect username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Invalid("incorrect username or password")
	}
	return user, nil
}
