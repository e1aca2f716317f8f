package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists users and their message log in a local SQLite file.
// Every method runs as its own implicit transaction; SQLite's internal
// locking handles concurrent writers.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.AutoMigrate(&User{}, &Message{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an already opened connection. Used by tests.
func NewWithDB(db *gorm.DB) *Store { return &Store{db: db} }

// EnsureUser inserts the user if absent. Repeat calls are no-ops and never
// overwrite the stored name.
func (s *Store) EnsureUser(ctx context.Context, id int64, name string) error {
	u := User{ID: id, Name: name}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&u).Error
}

// IsBanned reports the ban flag; unknown ids are not banned.
func (s *Store) IsBanned(ctx context.Context, id int64) (bool, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.Banned, nil
}

// SetBan sets the ban flag. A nonexistent id affects zero rows and is
// silent success.
func (s *Store) SetBan(ctx context.Context, id int64, banned bool) error {
	return s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("banned", banned).Error
}

// SaveMessage appends one immutable message row.
func (s *Store) SaveMessage(ctx context.Context, userID int64, role, content string) error {
	m := Message{UserID: userID, Role: role, Content: content}
	return s.db.WithContext(ctx).Create(&m).Error
}

// History returns the user's most recent messages, at most limit, reordered
// oldest-first. Unknown users get an empty slice.
func (s *Store) History(ctx context.Context, userID int64, limit int) ([]Message, error) {
	var msgs []Message
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// TotalUsers counts every user row, banned ones included.
func (s *Store) TotalUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, err
}
