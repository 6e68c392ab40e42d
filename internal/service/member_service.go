package service

import (
	"context"
	"fmt"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs member identity tokens.
type TokenIssuer interface {
	Issue(memberID uint, name, role string) (string, error)
}

type MemberService interface {
	Login(ctx context.Context, email, password string) (string, *models.Member, error)
	Get(ctx context.Context, id uint) (*models.Member, error)
	Register(ctx context.Context, name, email, password, role string) (*models.Member, error)
}

type memberService struct {
	members repository.MemberRepository
	tokens  TokenIssuer
}

func NewMemberService(members repository.MemberRepository, tokens TokenIssuer) MemberService {
	return &memberService{members: members, tokens: tokens}
}

func (s *memberService) Login(ctx context.Context, email, password string) (string, *models.Member, error) {
	member, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(member.ID, member.Name, member.Role)
	if err != nil {
		return "", nil, err
	}
	return token, member, nil
}

func (s *memberService) Get(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.members.FindByID(ctx, nil, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// Register stores a new member with a bcrypt hashed password.
func (s *memberService) Register(ctx context.Context, name, email, password, role string) (*models.Member, error) {
	if role == "" {
		role = models.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	member := &models.Member{Name: name, Email: email, Password: string(hash), Role: role}
	if err := s.members.Create(ctx, member); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return member, nil
}
