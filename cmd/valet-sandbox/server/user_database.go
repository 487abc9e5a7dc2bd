package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cloudvalet/valet/common"
	"golang.org/x/crypto/bcrypt"
)

// User database errors
var (
	ErrUserExists   = errors.New("Username already exists")
	ErrUserNotFound = errors.New("User not found")
)

// UserEntry is a user of the sandbox
type UserEntry struct {
	Username     string
	Email        string
	PasswordHash []byte
	Permission   common.Permission
}

// UserDatabase is an in-memory user database, keeping insertion order
type UserDatabase struct {
	cost  int
	users []*UserEntry
	mux   sync.Mutex
}

// NewUserDatabase creates a database with a default Admin user
func NewUserDatabase(adminPassword string, cost int) (*UserDatabase, error) {
	db := &UserDatabase{cost: cost}
	if err := db.Create("admin", "", adminPassword, common.PermissionAdmin); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *UserDatabase) find(username string) (int, *UserEntry) {
	for i, user := range db.users {
		if user.Username == username {
			return i, user
		}
	}
	return -1, nil
}

// Create adds a user. An empty permission gives Read.
func (db *UserDatabase) Create(username string, email string, password string, perm common.Permission) error {
	if perm == "" {
		perm = common.PermissionRead
	}
	perm, err := common.ParsePermission(string(perm))
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), db.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	db.mux.Lock()
	defer db.mux.Unlock()

	if _, existing := db.find(username); existing != nil {
		return ErrUserExists
	}

	db.users = append(db.users, &UserEntry{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Permission:   perm,
	})
	return nil
}

// Get returns a user, as seen by the API
func (db *UserDatabase) Get(username string) (common.User, error) {
	db.mux.Lock()
	defer db.mux.Unlock()

	_, user := db.find(username)
	if user == nil {
		return common.User{}, ErrUserNotFound
	}
	return user.public(), nil
}

// List returns all users, in creation order
func (db *UserDatabase) List() []common.User {
	db.mux.Lock()
	defer db.mux.Unlock()

	res := make([]common.User, 0, len(db.users))
	for _, user := range db.users {
		res = append(res, user.public())
	}
	return res
}

// Update renames a user and changes its email. The permission is
// only changed when given.
func (db *UserDatabase) Update(username string, newUsername string, email string, perm common.Permission) (common.User, error) {
	if perm != "" {
		var err error
		perm, err = common.ParsePermission(string(perm))
		if err != nil {
			return common.User{}, err
		}
	}

	db.mux.Lock()
	defer db.mux.Unlock()

	_, user := db.find(username)
	if user == nil {
		return common.User{}, ErrUserNotFound
	}

	if newUsername != username {
		if _, existing := db.find(newUsername); existing != nil {
			return common.User{}, ErrUserExists
		}
		user.Username = newUsername
	}
	user.Email = email
	if perm != "" {
		user.Permission = perm
	}
	return user.public(), nil
}

// Delete removes a user
func (db *UserDatabase) Delete(username string) error {
	db.mux.Lock()
	defer db.mux.Unlock()

	i, user := db.find(username)
	if user == nil {
		return ErrUserNotFound
	}
	db.users = append(db.users[:i], db.users[i+1:]...)
	return nil
}

// Authenticate checks a password, returning the user on success
func (db *UserDatabase) Authenticate(username string, password string) (common.User, bool) {
	db.mux.Lock()
	_, user := db.find(username)
	var hash []byte
	var public common.User
	if user != nil {
		hash = user.PasswordHash
		public = user.public()
	}
	db.mux.Unlock()

	if user == nil {
		return common.User{}, false
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return common.User{}, false
	}
	return public, true
}

func (user *UserEntry) public() common.User {
	return common.User{
		Username:   user.Username,
		Email:      user.Email,
		Permission: user.Permission.OrRead(),
	}
}
