package models

import (
	"strings"

	"github.com/julianstephens/punchcal/internal/constants"
)

type User struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Dept    string `json:"dept"`
}

// IsAdmin reports whether the user belongs to the administrator department.
func (u User) IsAdmin() bool {
	return u.Dept == constants.AdminDept || strings.EqualFold(u.Dept, "admin")
}
