package domain

// Profile is the public representation of a user
type Profile struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

// NewProfile builds the profile of u as seen by a viewer
func NewProfile(u *User, isSubscribed bool) Profile {
	p := Profile{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
	if u.Avatar != "" {
		avatar := u.Avatar
		p.Avatar = &avatar
	}
	return p
}

// AuthorCard is a followed author with a preview of their recipes
type AuthorCard struct {
	Profile
	Recipes      []RecipeBrief `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

// Registered is the response to a sign-up
type Registered struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
