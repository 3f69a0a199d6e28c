package models

type OwnerSettings struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

// DefaultOwnerSettings is what a fresh install shows until the owner
// edits it.
func DefaultOwnerSettings() OwnerSettings {
	return OwnerSettings{
		Name:     "PropMaster Management",
		Location: "Cairo, Egypt",
		Phone:    "+20 100 000 0000",
	}
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageArabic
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleTenant  Role = "tenant"
)

// User is someone who can log in. Portal users carry the id of the
// Tenant record they are allowed to see.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	TenantID     string `json:"tenant_id,omitempty"`
	PasswordHash string `json:"-"`
}
