// Package project persists user-facing state: box profiles and the
// application configuration, both as JSON under the user's home directory.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
)

// Profile is a named box geometry a user saved for reuse.
type Profile struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Params model.BoxParams `json:"params"`
}

// NewProfile creates a profile with a short unique identifier.
func NewProfile(name string, params model.BoxParams) Profile {
	return Profile{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Params: params,
	}
}

// DefaultProfilesDir returns the default directory for storing box profiles.
func DefaultProfilesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "colorprint"), nil
}

// DefaultProfilesPath returns the default file path for box profiles.
func DefaultProfilesPath() (string, error) {
	dir, err := DefaultProfilesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.json"), nil
}

// SaveProfiles writes the profiles to a JSON file, creating parent
// directories as needed.
func SaveProfiles(path string, profiles []Profile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProfiles reads profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Profile{}, nil
		}
		return nil, err
	}

	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	// Old files may predate profile identifiers.
	for i := range profiles {
		if profiles[i].ID == "" {
			profiles[i].ID = uuid.New().String()[:8]
		}
	}
	return profiles, nil
}

// ExportProfile writes a single profile to a JSON file for sharing.
func ExportProfile(path string, profile Profile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile reads a single profile from a JSON file and validates its
// geometry before accepting it.
func ImportProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, err
	}

	if profile.Name == "" {
		return Profile{}, errors.New("imported profile has no name")
	}
	if err := profile.Params.Validate(); err != nil {
		return Profile{}, fmt.Errorf("imported profile %q: %w", profile.Name, err)
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()[:8]
	}
	return profile, nil
}
