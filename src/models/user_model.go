package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User holds authentication essentials plus account-level settings. Display
// fields (title, bio, social links, ...) live on the Portfolio's personalInfo
// block, which is the single owner of that data.
type User struct {
	Id           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"password,omitempty" bson:"password"`
	Template     string             `json:"template" bson:"template"`
	CustomDomain string             `json:"customDomain" bson:"customDomain"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name         *string `json:"name"`
	Template     *string `json:"template"`
	CustomDomain *string `json:"customDomain"`
}

// Apply merges the patch into the user, replacing only the provided fields.
func (p *UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Template != nil {
		u.Template = *p.Template
	}
	if p.CustomDomain != nil {
		u.CustomDomain = *p.CustomDomain
	}
}
