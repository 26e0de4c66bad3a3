package models

// Asset is a financial holding that belongs to exactly one client.
// Value is carried as a float64 both on the wire and in the database.
type Asset struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"column:nome;size:255;not null" json:"nome"`
	Value    float64 `gorm:"column:valor;not null" json:"valor"`
	ClientID uint    `gorm:"column:cliente_id;index;not null" json:"clienteId"`

	Client *Client `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
}

// TableName keeps the table name used by the SQL migrations.
func (Asset) TableName() string { return "ativos" }

// AssetInput is the inbound payload for creating or replacing an asset.
type AssetInput struct {
	Name     string   `json:"nome" validate:"required"`
	Value    *float64 `json:"valor" validate:"required,gt=0"`
	ClientID *int64   `json:"clienteId" validate:"required,gt=0"`
}

// Apply copies the validated input onto a, replacing every mutable field.
func (in AssetInput) Apply(a *Asset) {
	a.Name = in.Name
	if in.Value != nil {
		a.Value = *in.Value
	}
	if in.ClientID != nil {
		a.ClientID = uint(*in.ClientID)
	}
}

// NewAssetInput builds an asset payload from plain values.
func NewAssetInput(name string, value float64, clientID uint) AssetInput {
	cid := int64(clientID)
	return AssetInput{Name: name, Value: &value, ClientID: &cid}
}
