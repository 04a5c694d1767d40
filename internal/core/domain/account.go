package domain

// AdminUsername is the built-in account that is never reconciled.
const AdminUsername = "admin"

type RootRole string

const (
	RoleAdmin  RootRole = "Admin"
	RoleEditor RootRole = "Editor"
	RoleViewer RootRole = "Viewer"
)

type Account struct {
	Email    string   `json:"email" yaml:"email" mapstructure:"email" validate:"required,email"`
	Name     string   `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	RootRole RootRole `json:"rootRole" yaml:"rootRole" mapstructure:"rootRole" validate:"required,oneof=Admin Editor Viewer"`

	// Remote-only, kept out of comparisons.
	ID       string `json:"-" yaml:"-" mapstructure:"-"`
	Username string `json:"-" yaml:"-" mapstructure:"-"`
}

func (a Account) Kind() ResourceKind { return KindAccount }
func (a Account) Key() string        { return a.Email }
func (a Account) IsExempt() bool     { return a.Username == AdminUsername }

func (a Account) Normalize(_ NormalizeOptions) Resource {
	return Account{
		Email:    a.Email,
		Name:     a.Name,
		RootRole: a.RootRole,
	}
}
