package declfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
)

// Extensions are tried in this order; the first file found for a team wins.
var Extensions = []string{".yaml", ".yml", ".json", ".toml", ".hcl"}

type Config struct {
	TogglesDir   string `mapstructure:"toggles_dir" validate:"required"`
	AccountsDir  string `mapstructure:"accounts_dir" validate:"required"`
	OwnerTagType string `mapstructure:"-"`
}

// Loader reads declarations laid out as <root>/<team>/<organization>.<ext>.
type Loader struct {
	cfg    Config
	logger ports.Logger
}

var _ ports.DeclarationLoader = (*Loader)(nil)

func NewLoader(cfg Config, logger ports.Logger) (*Loader, error) {
	if cfg.TogglesDir == "" && cfg.AccountsDir == "" {
		return nil, errors.New(errors.CodeConfigValidation, "declaration loader requires at least one declaration directory")
	}
	return &Loader{cfg: cfg, logger: logger}, nil
}

func (l *Loader) root(kind domain.ResourceKind) (string, error) {
	switch kind {
	case domain.KindToggle:
		return l.cfg.TogglesDir, nil
	case domain.KindAccount:
		return l.cfg.AccountsDir, nil
	}
	return "", errors.New(errors.CodeNotImplemented, fmt.Sprintf("no declaration directory for kind '%s'", kind))
}

// Load merges every team's file for organization. Teams are visited in
// lexical order and a later team replaces an earlier declaration of the same
// key.
func (l *Loader) Load(ctx context.Context, kind domain.ResourceKind, organization string) (domain.DesiredState, error) {
	state := domain.DesiredState{Kind: kind, Organization: organization, Tags: map[string]domain.Tag{}}

	root, err := l.root(kind)
	if err != nil {
		return state, err
	}
	log := l.logger.WithFields(map[string]any{"resource_kind": kind, "declarations_dir": root})

	entries, err := os.ReadDir(root)
	if err != nil {
		return state, errors.WrapUserFacing(err, errors.CodeLoadError,
			fmt.Sprintf("failed to read declaration directory %s", root),
			"Check declarations.toggles_dir and declarations.accounts_dir.")
	}

	index := make(map[string]int)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		team := entry.Name()
		dir := filepath.Join(root, team)
		isDir, err := isTeamDir(dir, entry)
		if err != nil {
			return state, err
		}
		if !isDir {
			continue
		}
		path, ok, err := findOrganizationFile(dir, organization)
		if err != nil {
			return state, err
		}
		if !ok {
			log.Debugf(ctx, "Team %s has no declarations for %s", team, organization)
			continue
		}

		items, err := decodeFile(ctx, path, kind)
		if err != nil {
			return state, err
		}
		log.Debugf(ctx, "Read %d declarations from %s", len(items), path)

		for i, fields := range items {
			key, _ := fields[keyField(kind)].(string)
			if key == "" {
				return state, errors.NewUserFacing(errors.CodeSchemaValidation,
					fmt.Sprintf("%s #%d in %s has no %q", kind, i+1, path, keyField(kind)),
					"Every declaration needs its key field.")
			}
			decl := domain.Declaration{Kind: kind, Key: key, Team: team, Source: path, Fields: fields}
			if at, dup := index[key]; dup {
				log.Debugf(ctx, "%s %q from team %s overrides team %s", kind, key, team, state.Declarations[at].Team)
				state.Declarations[at] = decl
			} else {
				index[key] = len(state.Declarations)
				state.Declarations = append(state.Declarations, decl)
			}
			if kind == domain.KindToggle {
				state.Tags[key] = domain.Tag{Key: key, Type: l.cfg.OwnerTagType, Value: team}
			}
		}
	}

	log.Infof(ctx, "Loaded %d %s declarations for %s", len(state.Declarations), kind, organization)
	return state, nil
}

// isTeamDir follows symlinked team directories.
func isTeamDir(dir string, entry fs.DirEntry) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return false, unreadable(err, dir)
	}
	return info.IsDir(), nil
}

// findOrganizationFile reports false only when no candidate file exists.
// Anything present but unreadable is an error so a team never silently drops
// out of the desired state.
func findOrganizationFile(dir, organization string) (string, bool, error) {
	for _, ext := range Extensions {
		path := filepath.Join(dir, organization+ext)
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return path, true, nil
		}
		if !os.IsNotExist(err) {
			return "", false, unreadable(err, path)
		}
		// A dangling symlink stats as missing.
		if _, lerr := os.Lstat(path); lerr == nil {
			return "", false, unreadable(err, path)
		}
	}
	return "", false, nil
}

func unreadable(err error, path string) error {
	return errors.WrapUserFacing(err, errors.CodeLoadError,
		fmt.Sprintf("failed to read declarations at %s", path),
		"Check that the declaration files and team directories are readable and that symlinks resolve.")
}

func keyField(kind domain.ResourceKind) string {
	if kind == domain.KindAccount {
		return "email"
	}
	return "name"
}
