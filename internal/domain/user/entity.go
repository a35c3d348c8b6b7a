package user

import "time"

// User is the account record persisted in the users collection. The session
// subsystem only ever reads ID and PasswordHash; everything else belongs to
// the profile and the movie lists.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	FirstName    string
	LastName     string
	AvatarURL    string
	Language     string
	MoviesSeen   []int
	MoviesToSee  []int
	Favorites    []int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a user ready for persistence. The password must be
// pre-hashed before calling this constructor; the store assigns the ID.
func NewUser(username, email, passwordHash, firstName, lastName string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Language:     "en",
		MoviesSeen:   []int{},
		MoviesToSee:  []int{},
		Favorites:    []int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UpdatePassword replaces the stored password hash.
func (u *User) UpdatePassword(newPasswordHash string) {
	u.PasswordHash = newPasswordHash
	u.UpdatedAt = time.Now().UTC()
}

// Update holds the mutable profile fields for a partial update. Nil fields
// are left untouched. Identity fields (ID) are deliberately absent: the
// subject of the update always comes from the verified session token, never
// from the request body.
type Update struct {
	Username    *string
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	AvatarURL   *string
	Language    *string
	MoviesSeen  *[]int
	MoviesToSee *[]int
	Favorites   *[]int
}
