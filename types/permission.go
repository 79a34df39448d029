package types

import (
	"fmt"
	"strings"
)

// Permission grant types, matching the "<type>(<value>)" encoding stored
// in a document's $permissions list.
const (
	PermissionCreate = "create"
	PermissionRead   = "read"
	PermissionUpdate = "update"
	PermissionDelete = "delete"
)

var permissionTypes = map[string]struct{}{
	PermissionCreate: {},
	PermissionRead:   {},
	PermissionUpdate: {},
	PermissionDelete: {},
}

// Permission is a single decoded access-control grant. Grants are stored
// and parsed but never enforced by this layer.
type Permission struct {
	Type  string
	Value string
}

// ParsePermission decodes a "<type>(<value>)" permission string.
func ParsePermission(s string) (Permission, error) {
	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Permission{}, fmt.Errorf("permission %q: %w", s, ErrInvalidPermission)
	}
	ptype := s[:open]
	if _, ok := permissionTypes[ptype]; !ok {
		return Permission{}, fmt.Errorf("permission type %q: %w", ptype, ErrInvalidPermission)
	}
	return Permission{
		Type:  ptype,
		Value: s[open+1 : len(s)-1],
	}, nil
}

// String encodes the grant back to its stored form.
func (p Permission) String() string {
	return p.Type + "(" + p.Value + ")"
}

// GetPermissions returns the document's permission strings with
// duplicates removed, preserving first-seen order.
func (d *Document) GetPermissions() []string {
	stored, _ := d.data[KeyPermissions].([]string)
	seen := make(map[string]struct{}, len(stored))
	perms := make([]string, 0, len(stored))
	for _, p := range stored {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		perms = append(perms, p)
	}
	return perms
}

// permissionsByType filters the (de-duplicated) permission list by grant
// type and strips the "<type>(" prefix and ")" suffix.
func (d *Document) permissionsByType(ptype string) []string {
	prefix := ptype + "("
	values := make([]string, 0)
	for _, p := range d.GetPermissions() {
		if strings.HasPrefix(p, prefix) {
			values = append(values, strings.TrimSuffix(strings.TrimPrefix(p, prefix), ")"))
		}
	}
	return values
}

// GetCreate returns the values of all create grants.
func (d *Document) GetCreate() []string {
	return d.permissionsByType(PermissionCreate)
}

// GetRead returns the values of all read grants.
func (d *Document) GetRead() []string {
	return d.permissionsByType(PermissionRead)
}

// GetUpdate returns the values of all update grants.
func (d *Document) GetUpdate() []string {
	return d.permissionsByType(PermissionUpdate)
}

// GetDelete returns the values of all delete grants.
func (d *Document) GetDelete() []string {
	return d.permissionsByType(PermissionDelete)
}
