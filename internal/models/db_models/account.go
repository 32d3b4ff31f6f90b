package db_models

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         Role `gorm:"type:varchar(16);default:customer;index"`
	Phone        string
	Gender       string

	Subscriptions []Subscription `gorm:"foreignKey:UserID"`
}
