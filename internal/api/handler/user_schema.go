package handler

import (
	"time"

	"github.com/jobboard/users-api/internal/core/domain"
	"github.com/jobboard/users-api/internal/core/ports"
)

const birthDateLayout = "2006-01-02"

// --- Request / Response types ---

type createUserRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=3"`
	LastName  string  `json:"lastName"  validate:"required,min=3"`
	Email     string  `json:"email"     validate:"required,email"`
	Password  string  `json:"password"  validate:"required,min=8,strongpassword"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Phone     *string `json:"phone"     validate:"omitempty,e164"`
}

type updateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=3"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=3"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,min=8,strongpassword"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Phone     *string `json:"phone"     validate:"omitempty,e164"`
	Role      *string `json:"role"      validate:"omitempty,oneof=USER ADMIN"`
}

// userResponse is the public shape of a user; it never carries the password
// hash.
type userResponse struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	BirthDate *string   `json:"birthDate"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// --- Request → Service input ---

func toCreateInput(req createUserRequest) ports.CreateUserInput {
	input := ports.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: parseBirthDate(req.BirthDate),
	}
	if req.Phone != nil {
		input.Phone = *req.Phone
	}
	return input
}

func toUpdateInput(req updateUserRequest) ports.UpdateUserInput {
	input := ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: parseBirthDate(req.BirthDate),
		Phone:     req.Phone,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}
	return input
}

// parseBirthDate converts a validated YYYY-MM-DD string. The datetime tag has
// already guaranteed the layout, so a parse failure maps to nil.
func parseBirthDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(birthDateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.BirthDate != nil {
		s := u.BirthDate.Format(birthDateLayout)
		resp.BirthDate = &s
	}
	return resp
}
