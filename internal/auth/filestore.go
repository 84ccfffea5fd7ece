package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileUser struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Role     Role   `json:"role" yaml:"role"`
}

// FileStore is an immutable credential table loaded once from disk.
type FileStore struct {
	users []User
	index map[string]int
}

// LoadUsersFile reads a list of {username, password, role} records. Files
// ending in .yaml or .yml are decoded as YAML, anything else as JSON. When a
// username repeats, the first record wins.
func LoadUsersFile(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []fileUser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	users := make([]User, 0, len(records))
	for _, r := range records {
		users = append(users, User{Username: r.Username, Password: r.Password, Role: r.Role})
	}
	return NewFileStore(users)
}

func NewFileStore(users []User) (*FileStore, error) {
	fs := &FileStore{index: make(map[string]int, len(users))}
	for _, u := range users {
		if u.Username == "" {
			return nil, fmt.Errorf("user with empty username")
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("user %s: unknown role %q", u.Username, u.Role)
		}
		if _, dup := fs.index[u.Username]; dup {
			continue
		}
		fs.index[u.Username] = len(fs.users)
		fs.users = append(fs.users, u)
	}
	return fs, nil
}

func (fs *FileStore) Lookup(username string) (User, bool) {
	i, ok := fs.index[username]
	if !ok {
		return User{}, false
	}
	return fs.users[i], true
}

// Users returns a copy of the table in file order.
func (fs *FileStore) Users() []User {
	out := make([]User, len(fs.users))
	copy(out, fs.users)
	return out
}
