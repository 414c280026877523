package domain

import "time"

// DefaultAvatar is assigned to accounts created through sign-up.
const DefaultAvatar = "👤"

// User is a member of the social graph.
type User struct {
	ID        UserID    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Followers UserSet   `json:"followers"`
	Following UserSet   `json:"following"`
	JoinDate  time.Time `json:"join_date"`
}

// Clone returns a deep copy so callers can read it outside the session lock.
func (u *User) Clone() User {
	c := *u
	c.Followers = u.Followers.Clone()
	c.Following = u.Following.Clone()
	return c
}

// Profile carries the fields a new account is created from.
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	ID             UserID   `json:"id"`
	Username       string   `json:"username"`
	Name           string   `json:"name"`
	Bio            string   `json:"bio"`
	Avatar         string   `json:"avatar"`
	FollowersCount int      `json:"followers_count"`
	FollowingCount int      `json:"following_count"`
	Followers      []UserID `json:"followers"`
	Following      []UserID `json:"following"`
	JoinDate       string   `json:"join_date"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		FollowersCount: u.Followers.Len(),
		FollowingCount: u.Following.Len(),
		Followers:      u.Followers.Sorted(),
		Following:      u.Following.Sorted(),
		JoinDate:       u.JoinDate.Format(time.DateOnly),
	}
}
