// Package identifier models namespaced resource names of the form namespace:path.
package identifier

import (
	"strings"

	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
)

const (
	// DefaultNamespace is used when a string has no namespace separator
	DefaultNamespace = "minecraft"

	// Separator splits namespace and path
	Separator = ":"
)

// Identifier is a namespaced name. The zero value is not valid.
type Identifier struct {
	Namespace string
	Path      string
}

// New builds an identifier from its parts, validating both
func New(namespace, path string) (Identifier, error) {
	if err := validateNamespace(namespace); err != nil {
		return Identifier{}, err
	}
	if err := validatePath(path); err != nil {
		return Identifier{}, err
	}
	return Identifier{Namespace: namespace, Path: path}, nil
}

// Parse reads "namespace:path" or a bare "path" in the default namespace
func Parse(s string) (Identifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Identifier{}, qcerr.InvalidArgument("identifier cannot be empty")
	}

	namespace, path, found := strings.Cut(s, Separator)
	if !found {
		return New(DefaultNamespace, s)
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return New(namespace, path)
}

// MustParse is Parse for package-level constants; it panics on error
func MustParse(s string) Identifier {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns namespace:path
func (i Identifier) String() string {
	return i.Namespace + Separator + i.Path
}

// TranslationKey returns prefix.namespace.path, e.g. weapon.quakecraft.shooter
func (i Identifier) TranslationKey(prefix string) string {
	return prefix + "." + i.Namespace + "." + i.Path
}

// IsZero reports whether the identifier was never set
func (i Identifier) IsZero() bool {
	return i.Namespace == "" && i.Path == ""
}

// MarshalText implements encoding.TextMarshaler
func (i Identifier) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (i *Identifier) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

func validateNamespace(namespace string) error {
	if namespace == "" {
		return qcerr.InvalidArgument("identifier namespace cannot be empty")
	}
	for _, r := range namespace {
		if !isNamespaceRune(r) {
			return qcerr.InvalidArgumentf("invalid character %q in namespace %q", r, namespace).
				WithMeta("namespace", namespace)
		}
	}
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return qcerr.InvalidArgument("identifier path cannot be empty")
	}
	for _, r := range path {
		if !isNamespaceRune(r) && r != '/' {
			return qcerr.InvalidArgumentf("invalid character %q in path %q", r, path).
				WithMeta("path", path)
		}
	}
	return nil
}

func isNamespaceRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.'
}
