package domain

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Role          *string `json:"role,omitempty"`
	EmailVerified *bool   `json:"emailVerified,omitempty"`
	Balance       *string `json:"balance,omitempty"`
	WalletAddress *string `json:"walletAddress,omitempty"`
	KYCStatus     *string `json:"kycStatus,omitempty"`
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil && p.EmailVerified == nil &&
		p.Balance == nil && p.WalletAddress == nil && p.KYCStatus == nil
}

func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.EmailVerified != nil {
		u.EmailVerified = *p.EmailVerified
	}
	if p.Balance != nil {
		u.Balance = *p.Balance
	}
	if p.WalletAddress != nil {
		u.WalletAddress = *p.WalletAddress
	}
	if p.KYCStatus != nil {
		u.KYCStatus = *p.KYCStatus
	}
	return u
}

// TransactionPatch carries the fields of a partial transaction update.
type TransactionPatch struct {
	Status    *string `json:"status,omitempty"`
	TxHash    *string `json:"txHash,omitempty"`
	Timestamp *int64  `json:"timestamp,omitempty"`
}

func (p TransactionPatch) Apply(tx Transaction) Transaction {
	if p.Status != nil {
		tx.Status = *p.Status
	}
	if p.TxHash != nil {
		tx.TxHash = *p.TxHash
	}
	if p.Timestamp != nil {
		tx.Timestamp = *p.Timestamp
	}
	return tx
}
