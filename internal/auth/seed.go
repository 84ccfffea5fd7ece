package auth

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SeedAccount struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     Role   `yaml:"role"`
}

// DefaultSeedAccounts returns one account per role, all sharing password.
func DefaultSeedAccounts(password string) []SeedAccount {
	accounts := make([]SeedAccount, 0, len(AllRoles))
	for _, r := range AllRoles {
		accounts = append(accounts, SeedAccount{Username: string(r), Password: password, Role: r})
	}
	return accounts
}

type seedFile struct {
	Users []SeedAccount `yaml:"users"`
}

func LoadSeedFile(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sf.Users, nil
}

// Seed inserts the accounts that do not exist yet and returns how many rows
// were created. Running it repeatedly never duplicates a username.
func (s *SQLStore) Seed(ctx context.Context, accounts []SeedAccount, cost int) (int, error) {
	created := 0
	for _, a := range accounts {
		if a.Username == "" || a.Password == "" {
			continue
		}
		if !a.Role.Valid() {
			return created, fmt.Errorf("seed %s: unknown role %q", a.Username, a.Role)
		}
		ok, err := s.CreateIfAbsent(ctx, a.Username, a.Password, a.Role, cost)
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", a.Username, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}
