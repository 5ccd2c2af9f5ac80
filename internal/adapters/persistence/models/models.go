package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction types
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// User represents the users table. The refresh-token slot lives directly on
// the account row: exactly one active refresh token per account, nulled on
// logout and replaced on every refresh.
type User struct {
	ID                 string         `gorm:"primaryKey;size:36" json:"id"`
	Username           string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email              string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash       string         `gorm:"size:255;not null" json:"-"`
	Role               string         `gorm:"size:20;default:'USER'" json:"role"`
	RefreshToken       *string        `gorm:"size:255;index" json:"-"`
	RefreshTokenExpiry *time.Time     `json:"-"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// HasValidRefreshToken reports whether the slot holds an unexpired token.
func (u *User) HasValidRefreshToken() bool {
	return u.RefreshToken != nil && u.RefreshTokenExpiry != nil && time.Now().Before(*u.RefreshTokenExpiry)
}

// UserResponse DTO
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Category represents the categories table. A category with is_default set
// is shared/system-level and belongs to no individual user.
type Category struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	TransactionType string         `gorm:"size:20;not null" json:"transaction_type"`
	IsDefault       bool           `gorm:"default:false;index" json:"is_default"`
	CreatedBy       string         `gorm:"size:36;not null;index" json:"created_by"`
	UpdatedBy       string         `gorm:"size:36" json:"updated_by,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryResponse DTO
type CategoryResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TransactionType string    `json:"transaction_type"`
	IsDefault       bool      `json:"is_default"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (c *Category) ToResponse() *CategoryResponse {
	return &CategoryResponse{
		ID:              c.ID,
		Name:            c.Name,
		TransactionType: c.TransactionType,
		IsDefault:       c.IsDefault,
		CreatedBy:       c.CreatedBy,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// Transaction represents the transactions table.
type Transaction struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	UserID          string         `gorm:"size:36;not null;index" json:"user_id"`
	CategoryID      string         `gorm:"size:36;not null;index" json:"category_id"`
	TransactionType string         `gorm:"size:20;not null" json:"transaction_type"`
	Amount          float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description     string         `gorm:"type:text" json:"description"`
	TransactionDate time.Time      `gorm:"not null;index" json:"transaction_date"`
	CreatedBy       string         `gorm:"size:36;not null;index" json:"created_by"`
	UpdatedBy       string         `gorm:"size:36" json:"updated_by,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionResponse DTO
type TransactionResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	CategoryID      string            `json:"category_id"`
	CategoryName    string            `json:"category_name,omitempty"`
	TransactionType string            `json:"transaction_type"`
	Amount          float64           `json:"amount"`
	Description     string            `json:"description"`
	TransactionDate time.Time         `json:"transaction_date"`
	Category        *CategoryResponse `json:"category,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (t *Transaction) ToResponse() *TransactionResponse {
	resp := &TransactionResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		CategoryID:      t.CategoryID,
		TransactionType: t.TransactionType,
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}

	if t.Category != nil {
		resp.CategoryName = t.Category.Name
		resp.Category = t.Category.ToResponse()
	}

	return resp
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Transaction{},
	)
}
