package models

// Client is a customer owning zero or more assets.
type Client struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"column:nome;size:255;not null" json:"nome"`
	Email  string `gorm:"column:email;size:255;not null" json:"email"`
	Active bool   `gorm:"column:status;not null" json:"status"`

	Assets []Asset `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName keeps the table name used by the SQL migrations.
func (Client) TableName() string { return "clientes" }

// StatusCode returns the translation code for the active flag.
func (c Client) StatusCode() string {
	if c.Active {
		return "status_active"
	}
	return "status_inactive"
}

// ClientInput is the inbound payload for creating or replacing a client.
type ClientInput struct {
	Name   string `json:"nome" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Active *bool  `json:"status" validate:"required"`
}

// Apply copies the validated input onto c, replacing every mutable field.
func (in ClientInput) Apply(c *Client) {
	c.Name = in.Name
	c.Email = in.Email
	if in.Active != nil {
		c.Active = *in.Active
	}
}

// InputFromClient builds the full-record payload for c.
func InputFromClient(c Client) ClientInput {
	active := c.Active
	return ClientInput{Name: c.Name, Email: c.Email, Active: &active}
}
