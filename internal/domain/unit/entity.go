package unit

// Unit is a venue that owns one or more courts.
type Unit struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"column:name;size:120;not null" json:"nome"`
	Location string `gorm:"column:location;size:255" json:"localizacao"`
	Phone    string `gorm:"column:phone;size:40" json:"telefone"`
}

func (Unit) TableName() string { return "units" }
