package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/saver"
	"github.com/gogpu/saver/shader"
)

// Ext is the file extension of effect descriptors.
const Ext = ".toml"

var (
	// ErrMissingBase is returned when a descriptor does not name a base effect.
	ErrMissingBase = errors.New("loader: descriptor has no base effect")

	// ErrNoFragment is returned when neither the descriptor nor its base
	// effect provides a fragment shader.
	ErrNoFragment = errors.New("loader: no fragment shader")
)

// descriptor is the on-disk form of a custom effect.
type descriptor struct {
	Description string         `toml:"description"`
	Base        string         `toml:"base"`
	Fragment    string         `toml:"fragment"`
	Options     map[string]any `toml:"options"`
}

// LoadFile reads one descriptor and builds its registry entry. The base
// effect is resolved in base, which must hold the built-ins; a nil base uses
// a fresh built-in registry.
//
// Every failure is returned as a *saver.LoadError.
func LoadFile(path string, base *saver.Registry) (saver.Entry, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	entry, err := loadFile(path, name, base)
	if err != nil {
		return saver.Entry{}, &saver.LoadError{Name: name, Path: path, Err: err}
	}
	return entry, nil
}

func loadFile(path, name string, base *saver.Registry) (saver.Entry, error) {
	if base == nil {
		base = saver.NewBuiltinRegistry()
	}

	var desc descriptor
	md, err := toml.DecodeFile(path, &desc)
	if err != nil {
		return saver.Entry{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		saver.Logger().Debug("loader: ignoring unknown keys", "path", path, "keys", fmt.Sprint(undecoded))
	}

	if strings.TrimSpace(desc.Base) == "" {
		return saver.Entry{}, ErrMissingBase
	}
	parent, ok := base.Lookup(desc.Base)
	if !ok {
		return saver.Entry{}, fmt.Errorf("base %q: %w", desc.Base, saver.ErrNotFound)
	}

	effect, err := saver.Configure(parent.Effect, saver.Options(desc.Options))
	if err != nil {
		return saver.Entry{}, err
	}

	fragment := parent.Fragment
	if desc.Fragment != "" {
		if _, err := shader.CompileCached(name, desc.Fragment); err != nil {
			return saver.Entry{}, err
		}
		fragment = desc.Fragment
	}
	if fragment == "" {
		return saver.Entry{}, ErrNoFragment
	}

	description := desc.Description
	if description == "" {
		description = fmt.Sprintf("%s (custom)", parent.Description)
	}

	return saver.Entry{
		Name:        name,
		Description: description,
		Effect:      effect,
		Fragment:    fragment,
		Source:      path,
	}, nil
}

// LoadDir loads every descriptor in dir, in file name order. Files that fail
// are reported in errs and left out of entries. A missing directory yields
// no entries and no errors.
func LoadDir(dir string, base *saver.Registry) (entries []saver.Entry, errs []error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			saver.Logger().Debug("loader: no custom effect directory", "dir", dir)
			return nil, nil
		}
		return nil, []error{fmt.Errorf("loader: read %s: %w", dir, err)}
	}
	if base == nil {
		base = saver.NewBuiltinRegistry()
	}

	for _, f := range files {
		path := filepath.Join(dir, f.Name())
		if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), Ext) {
			saver.Logger().Debug("loader: skipping file", "path", path)
			continue
		}

		entry, err := LoadFile(path, base)
		if err != nil {
			saver.Logger().Warn("loader: effect rejected", "path", path, "err", err)
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, errs
}

// Apply loads dir and registers the results into reg, replacing built-ins of
// the same name. Rejected files leave reg untouched; their errors are joined
// into the returned error while the remaining files are still registered.
func Apply(reg *saver.Registry, dir string) error {
	entries, errs := LoadDir(dir, reg)
	for _, e := range entries {
		if err := reg.Register(e); err != nil {
			errs = append(errs, &saver.LoadError{Name: e.Name, Path: e.Source, Err: err})
			continue
		}
		saver.Logger().Info("loader: custom effect loaded", "name", e.Name, "path", e.Source)
	}
	return errors.Join(errs...)
}
