package dto

import (
	"time"

	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/stats"
)

type UserResponseDTO struct {
	ID               string    `json:"id" example:"64f1c0a2b3"`
	Name             string    `json:"name" example:"Jane Doe"`
	Email            string    `json:"email" example:"jane@example.com"`
	Role             string    `json:"role" example:"user"`
	EmailVerified    bool      `json:"email_verified" example:"true"`
	ReferralCode     string    `json:"referral_code,omitempty" example:"JANE42"`
	ReferredBy       string    `json:"referred_by,omitempty"`
	WalletType       string    `json:"wallet_type,omitempty" example:"metamask"`
	WalletAddress    string    `json:"wallet_address" example:"0x52e4cfa1bd6a7c3e7d4f9e8b0c1a2b3c4d5e9a1f"`
	WalletShort      string    `json:"wallet_short" example:"0x52e4...9a1f"`
	Balance          string    `json:"balance" example:"1500.25"`
	IsCryptoUser     bool      `json:"is_crypto_user"`
	KYCStatus        string    `json:"kyc_status" example:"verified"`
	SignedOption     string    `json:"signed_option,omitempty"`
	TransactionCount int       `json:"transaction_count,omitempty" example:"4"`
	TotalSpentUSD    float64   `json:"total_spent_usd,omitempty" example:"1200"`
	TotalSpent       string    `json:"total_spent,omitempty" example:"$1,200"`
	CreatedAt        time.Time `json:"created_at" example:"2024-01-25T14:30:00Z"`
	UpdatedAt        time.Time `json:"updated_at" example:"2024-01-25T14:30:00Z"`
}

type UserDetailsResponseDTO struct {
	User         UserResponseDTO          `json:"user"`
	Transactions []TransactionResponseDTO `json:"transactions"`
}

// UpdateUserRequestDTO is a partial update: omitted fields stay as they are.
type UpdateUserRequestDTO struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100" example:"Jane Doe"`
	Email         *string `json:"email" validate:"omitempty,email" example:"jane@example.com"`
	Role          *string `json:"role" validate:"omitempty,oneof=admin user" example:"user"`
	EmailVerified *bool   `json:"email_verified" example:"true"`
	Balance       *string `json:"balance" validate:"omitempty,numeric" example:"1500.25"`
	WalletAddress *string `json:"wallet_address" validate:"omitempty,evmaddr" example:"0x52e4cfa1bd6a7c3e7d4f9e8b0c1a2b3c4d5e9a1f"`
	KYCStatus     *string `json:"kyc_status" validate:"omitempty,oneof=pending verified rejected" example:"verified"`
}

func (r UpdateUserRequestDTO) ToPatch() domain.UserPatch {
	return domain.UserPatch{
		Name:          r.Name,
		Email:         r.Email,
		Role:          r.Role,
		EmailVerified: r.EmailVerified,
		Balance:       r.Balance,
		WalletAddress: r.WalletAddress,
		KYCStatus:     r.KYCStatus,
	}
}

func NewUserResponse(u domain.User) UserResponseDTO {
	return UserResponseDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		ReferralCode:  u.ReferralCode,
		ReferredBy:    u.ReferredBy,
		WalletType:    u.WalletType,
		WalletAddress: u.WalletAddress,
		WalletShort:   Truncate(u.WalletAddress),
		Balance:       u.Balance,
		IsCryptoUser:  u.IsCryptoUser,
		KYCStatus:     u.KYCStatus,
		SignedOption:  u.SignedOption,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// WithSummary adds the user's transaction count and spend.
func (r UserResponseDTO) WithSummary(s stats.UserSummary) UserResponseDTO {
	r.TransactionCount = s.TransactionCount
	r.TotalSpentUSD = s.TotalSpentUSD
	r.TotalSpent = FormatUSD(s.TotalSpentUSD)
	return r
}
