package service

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/model"
	"Atelier/internal/pkg/security"
	"Atelier/internal/repository"
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.AuthResultDTO, error)
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.AuthResultDTO, error)
	AdminLogin(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.AuthResultDTO, error)
	GetUserInfo(ctx context.Context, userID string) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.AuthResultDTO, error) {
	if strings.TrimSpace(regDTO.Name) == "" ||
		strings.TrimSpace(regDTO.Email) == "" ||
		regDTO.Password == "" {
		return nil, ErrFieldsMissing
	}

	// 查重条件是 (email, name) 组合
	existing, err := s.userRepo.GetByEmailAndName(ctx, regDTO.Email, regDTO.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     regDTO.Name,
		Email:    regDTO.Email,
		Password: passwordHash,
		Role:     model.RoleUser,
	}
	if err = s.userRepo.Create(ctx, user); err != nil {
		// (email, name) 组合唯一索引兜住并发注册
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	token, err := security.GenerateUserToken(user.ID.Hex(), user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.AuthResultDTO, error) {
	user, err := s.authenticate(ctx, credDTO)
	if err != nil {
		return nil, err
	}

	token, err := security.GenerateUserToken(user.ID.Hex(), user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}

// AdminLogin 凭据校验通过后额外要求 admin 角色，角色不符与密码错误分别上报
func (s *UserServiceImpl) AdminLogin(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.AuthResultDTO, error) {
	user, err := s.authenticate(ctx, credDTO)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}

	token, err := security.GenerateAdminToken(user.ID.Hex(), user.Email, user.Name, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

func (s *UserServiceImpl) authenticate(ctx context.Context, credDTO *dto.CredentialDTO) (*model.User, error) {
	if credDTO.Email == "" || credDTO.Password == "" {
		return nil, ErrFieldsMissing
	}

	user, err := s.userRepo.GetByEmail(ctx, credDTO.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	if err = security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, userID string) (*dto.UserDTO, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}
