// Package dirsource implements tzzone.Source over a filesystem tree of
// compiled TZif files (a "zoneinfo" directory, e.g. /usr/share/zoneinfo),
// the way package tzdb/ianadist walks a downloaded distribution
// archive — except this walks an already-extracted directory tree rather
// than unpacking a tar.gz. It keeps to exactly the thin surface a
// collaborator needs: enumerate, load, resolve the local zone.
package dirsource

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngrash/go-tzrules/tzzone"
)

// tzifMagic is RFC 8536's four-byte file magic, used to skip non-zone
// files (README, zone.tab, posixrules symlinks to themselves, etc.)
// during enumeration without decoding every file.
var tzifMagic = []byte("TZif")

// Source implements tzzone.Source by reading TZif files from a directory
// tree. Zone ids are slash-separated paths relative to Root (e.g.
// "America/New_York"), matching the on-disk zoneinfo layout.
type Source struct {
	Root string

	// LocalPath is the path (absolute, or relative to Root) of the
	// symlink/file naming the host's local zone, typically /etc/localtime.
	// If empty, ResolveLocal reports UTC.
	LocalPath string
}

// New returns a Source rooted at root, with the conventional /etc/localtime
// local-zone path.
func New(root string) *Source {
	return &Source{Root: root, LocalPath: "/etc/localtime"}
}

func (s *Source) path(id string) (string, error) {
	if id == "" || strings.HasPrefix(id, "/") || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid zone id %q", id)
	}
	return filepath.Join(s.Root, filepath.FromSlash(id)), nil
}

// LoadBytes implements tzzone.Source.
func (s *Source) LoadBytes(id string) ([]byte, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("dirsource: %w", err)
	}
	return b, nil
}

// LoadRegistry implements tzzone.Source. A directory of TZif files has no
// registry form; this collaborator only ever serves loadBytes.
func (s *Source) LoadRegistry(id string) (tzzone.RegistryFields, error) {
	return tzzone.RegistryFields{}, fmt.Errorf("dirsource: registry form not available for %q", id)
}

// Enumerate implements tzzone.Source: every regular file under Root whose
// content starts with the TZif magic, as a slash-separated path relative
// to Root.
func (s *Source) Enumerate() ([]string, error) {
	var ids []string
	err := filepath.WalkDir(s.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, ferr := os.Open(p)
		if ferr != nil {
			return nil // unreadable entry, skip rather than fail the whole walk
		}
		defer f.Close()
		head := make([]byte, len(tzifMagic))
		n, _ := f.Read(head)
		if n < len(tzifMagic) || !bytes.Equal(head, tzifMagic) {
			return nil
		}
		rel, rerr := filepath.Rel(s.Root, p)
		if rerr != nil {
			return nil
		}
		ids = append(ids, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dirsource: enumerate: %w", err)
	}
	return ids, nil
}

// ResolveLocal implements tzzone.Source: follows LocalPath (a symlink into
// Root, conventionally /etc/localtime -> Root/<id>) back to a zone id and
// returns its bytes. If LocalPath is empty or unresolvable, it reports the
// UTC sentinel (bytes and reg both nil).
func (s *Source) ResolveLocal() (id string, b []byte, reg *tzzone.RegistryFields, err error) {
	if s.LocalPath == "" {
		return "UTC", nil, nil, nil
	}
	localPath := s.LocalPath
	if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(s.Root, localPath)
	}
	target, err := filepath.EvalSymlinks(localPath)
	if err != nil {
		return "UTC", nil, nil, nil
	}
	rel, err := filepath.Rel(s.Root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "UTC", nil, nil, nil
	}
	id = filepath.ToSlash(rel)
	b, err = s.LoadBytes(id)
	if err != nil {
		return "UTC", nil, nil, nil
	}
	return id, b, nil, nil
}

// GetLocalizedName implements tzzone.Source. A zoneinfo directory carries
// no locale resource catalogue; the core falls back to the names embedded
// in the decoded TZif bytes.
func (s *Source) GetLocalizedName(id string, kind tzzone.NameKind) (string, bool) {
	return "", false
}
