package client

// Client is a customer who books courts. Addresses keep the order they were given in.
type Client struct {
	ID        int64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string   `gorm:"column:name;size:120;not null" json:"nome"`
	Phone     string   `gorm:"column:phone;size:40;not null" json:"telefone"`
	Addresses []string `gorm:"-" json:"enderecos"`
}

func (Client) TableName() string { return "clients" }

type Address struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID int64   `gorm:"column:client_id;not null;index"`
	Address  string  `gorm:"column:address;size:255;not null"`
	Position int     `gorm:"column:position;not null"`
	Client   *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

func (Address) TableName() string { return "client_addresses" }
