package court

import "beachbox/internal/domain/unit"

// Sport types a court can be registered with.
const (
	TypeBeachTennis = "Beach Tênis"
	TypeVolleyball  = "Vôlei"
	TypeSoccer      = "Futebol"
	TypeFrescobol   = "Frescobol"
)

var Types = []string{TypeBeachTennis, TypeVolleyball, TypeSoccer, TypeFrescobol}

type Court struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"column:name;size:120;not null" json:"nome"`
	Location  string  `gorm:"column:location;size:255" json:"localizacao"`
	Type      string  `gorm:"column:type;size:40;not null" json:"tipo"`
	BasePrice float64 `gorm:"column:base_price;not null" json:"precobase"`
	Available bool    `gorm:"column:available;not null" json:"estaDisponivel"`
	UnitID    int64   `gorm:"column:unit_id;not null;index" json:"idUnidade"`

	// UnitName is filled by the unit join on reads.
	UnitName string `gorm:"column:unit_name;->;-:migration" json:"unidade"`

	Unit *unit.Unit `gorm:"foreignKey:UnitID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Court) TableName() string { return "courts" }
