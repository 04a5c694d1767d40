package unleash

import (
	"fmt"
	"strconv"

	"github.com/go-viper/mapstructure/v2"

	"github.com/olusolaa/flagsync/internal/core/domain"
)

type featuresResponse struct {
	Features []feature `json:"features"`
}

// feature is the admin API shape of a toggle. Service-assigned fields such
// as strategy ids and timestamps are read and then dropped.
type feature struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	Project     string           `json:"project,omitempty"`
	Stale       bool             `json:"stale"`
	Enabled     bool             `json:"enabled"`
	CreatedAt   string           `json:"createdAt,omitempty"`
	Variants    []domain.Variant `json:"variants"`
	Strategies  []strategy       `json:"strategies"`
}

type strategy struct {
	ID          string              `json:"id,omitempty"`
	Name        string              `json:"name"`
	Parameters  map[string]any      `json:"parameters"`
	Constraints []domain.Constraint `json:"constraints"`
}

func (f feature) toDomain() (domain.Toggle, error) {
	t := domain.Toggle{
		Name:        f.Name,
		Description: f.Description,
		Type:        f.Type,
		Stale:       f.Stale,
		Enabled:     f.Enabled,
		Variants:    f.Variants,
		Strategies:  make([]domain.Strategy, 0, len(f.Strategies)),
	}
	for _, s := range f.Strategies {
		params, err := stringParameters(s.Parameters)
		if err != nil {
			return t, fmt.Errorf("toggle %q strategy %q: %w", f.Name, s.Name, err)
		}
		t.Strategies = append(t.Strategies, domain.Strategy{
			Name:        s.Name,
			Parameters:  params,
			Constraints: s.Constraints,
		})
	}
	return t, nil
}

// stringParameters accepts numeric and boolean parameter values the way
// declarations do and renders them as strings.
func stringParameters(raw map[string]any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return out, nil
}

type usersResponse struct {
	Users []user `json:"users"`
}

type user struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	RootRole int    `json:"rootRole"`
}

type userRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	RootRole  int    `json:"rootRole"`
	SendEmail bool   `json:"sendEmail"`
}

var roleIDs = map[domain.RootRole]int{
	domain.RoleAdmin:  1,
	domain.RoleEditor: 2,
	domain.RoleViewer: 3,
}

func roleName(id int) (domain.RootRole, bool) {
	for name, rid := range roleIDs {
		if rid == id {
			return name, true
		}
	}
	return "", false
}

func (u user) toDomain() domain.Account {
	role, _ := roleName(u.RootRole)
	return domain.Account{
		Email:    u.Email,
		Name:     u.Name,
		RootRole: role,
		ID:       strconv.Itoa(u.ID),
		Username: u.Username,
	}
}

type tagsResponse struct {
	Tags []domain.Tag `json:"tags"`
}

type tagUpdate struct {
	AddedTags   []domain.Tag `json:"addedTags"`
	RemovedTags []domain.Tag `json:"removedTags"`
}
