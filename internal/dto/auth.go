package dto

import "time"

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"admin@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
}

type LoginResponseDTO struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at" example:"2024-01-25T14:30:00Z"`
	Operator  OperatorDTO `json:"operator"`
}

type OperatorDTO struct {
	ID    string `json:"id" example:"64f1c0a2b3"`
	Email string `json:"email" example:"admin@example.com"`
	Name  string `json:"name" example:"Admin"`
	Role  string `json:"role" example:"admin"`
}
