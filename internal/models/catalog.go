package models

// Product is a finished product sold by the bakery. SellingPrice is in centavos.
type Product struct {
	Base
	Owned
	Name         string `gorm:"not null" json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	SellingPrice int64  `gorm:"type:bigint;not null;default:0" json:"selling_price"`
}

// Customer is a person or company that places orders.
type Customer struct {
	Base
	Owned
	Name     string `gorm:"not null" json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	CpfCnpj  string `json:"cpf_cnpj"`
	PhotoURL string `json:"photo_url"`
	Notes    string `json:"notes"`
}

// Menu is a published list of items (cardápio).
type Menu struct {
	Base
	Owned
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Active      bool       `gorm:"not null" json:"active"`
	Items       []MenuItem `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"items"`
}

// MenuItem is one entry of a Menu. Price is in centavos.
type MenuItem struct {
	Base
	MenuID      string `gorm:"type:uuid;not null;index" json:"menu_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"type:bigint;not null;default:0" json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Position    int    `gorm:"not null;default:0" json:"position"`
}
