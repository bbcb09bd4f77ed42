package models

import "time"

type User struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string  `gorm:"not null;uniqueIndex" json:"username"`
	Password       string  `gorm:"not null" json:"-"`
	First          *string `json:"first,omitempty"`
	Last           *string `json:"last,omitempty"`
	Email          *string `json:"email,omitempty"`
	Role           *string `json:"role,omitempty"`
	OrganizationID int     `gorm:"default:1" json:"organization_id"`
	RegionID       *int    `json:"region_id,omitempty"`
	IsAdmin        bool    `gorm:"default:false" json:"is_admin"`
}

type Client struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

// Job is the authorization anchor: every nested resource resolves to a
// job whose UserID must match the caller.
type Job struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      *string    `json:"name"`
	CreatedAt *time.Time `json:"created_at"`
	Status    *string    `json:"status"`
	ClientID  *uint      `json:"client_id"`
	Client    *Client    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	UserID    uint       `gorm:"index" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Estimate struct {
	ID       uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Shipping *float64 `json:"shipping"`
	Taxes    *float64 `json:"taxes"`
	JobID    uint     `gorm:"index" json:"job_id"`
	Job      *Job     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Order struct {
	ID    uint `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID uint `gorm:"index" json:"job_id"`
	Job   *Job `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Trade struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       *string   `json:"name"`
	EstimateID uint      `gorm:"index" json:"estimate_id"`
	Estimate   *Estimate `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Service struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    *string `json:"name"`
	OrderID *uint   `json:"order_id"`
	Order   *Order  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	TradeID *uint   `json:"trade_id"`
	Trade   *Trade  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

type Material struct {
	ID           uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         *string  `json:"name"`
	Quantity     *int     `json:"quantity"`
	Unit         *string  `json:"unit"`
	CostPerUnit  *float64 `json:"cost_per_unit"`
	SupplierCost *float64 `json:"supplier_cost"`
	Profit       *float64 `json:"profit"`
	ServiceID    uint     `gorm:"index" json:"service_id"`
	Service      *Service `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Material) TableName() string { return "services_materials" }

type Labor struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Description *string  `json:"description"`
	Hours       *float64 `json:"hours"`
	CostPerHour *float64 `json:"cost_per_hour"`
	ServiceID   uint     `gorm:"index" json:"service_id"`
	Service     *Service `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Labor) TableName() string { return "services_labor" }

type JobFile struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	FileURL     *string `json:"file_url"`
	Group       *string `gorm:"column:group" json:"group"`
	Description *string `json:"description"`
	JobID       uint    `gorm:"index" json:"job_id"`
	Job         *Job    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (JobFile) TableName() string { return "jobs_files" }

// Report holds the serialized workfile report document, one row per
// workfile.
type Report struct {
	ID         uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkfileID uint  `gorm:"uniqueIndex" json:"workfile_id"`
	Report     JSONB `gorm:"type:jsonb;default:'{}'" json:"report"`
}
