package npc

import "sheriff-lite/smuggle"

// MerchantPersona defines a named merchant character.
type MerchantPersona struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Tagline   string                     `json:"tagline"`
	AvatarKey string                     `json:"avatarKey"`
	Tier      smuggle.Tier               `json:"tier"`
	Profile   smuggle.PersonalityProfile `json:"profile"`
}
