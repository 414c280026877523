package domain

import (
	"encoding/json"
	"sort"
)

// UserID identifies a user within a session.
type UserID int64

// PostID identifies a post within a session.
type PostID int64

// CommentID identifies a comment within a session.
type CommentID int64

// NotificationID identifies a notification within a session.
type NotificationID int64

// UserSet is a set of user ids. The zero value is not usable; use NewUserSet.
type UserSet map[UserID]struct{}

// NewUserSet builds a set from the given ids, dropping duplicates.
func NewUserSet(ids ...UserID) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s UserSet) Has(id UserID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was absent.
func (s UserSet) Add(id UserID) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove deletes id and reports whether it was present.
func (s UserSet) Remove(id UserID) bool {
	if _, ok := s[id]; !ok {
		return false
	}
	delete(s, id)
	return true
}

// Len returns the number of ids in the set.
func (s UserSet) Len() int { return len(s) }

// Sorted returns the ids in ascending order.
func (s UserSet) Sorted() []UserID {
	ids := make([]UserID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns an independent copy of the set.
func (s UserSet) Clone() UserSet {
	c := make(UserSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// MarshalJSON renders the set as a sorted array.
func (s UserSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON accepts an array of ids.
func (s *UserSet) UnmarshalJSON(data []byte) error {
	var ids []UserID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewUserSet(ids...)
	return nil
}
