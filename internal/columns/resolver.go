// Package columns maps the header variants seen in supplier files and
// Master BOM exports onto canonical column roles.
package columns

import "strings"

// Role is a canonical column role used across the pipeline.
type Role string

const (
	RolePN          Role = "PN"
	RoleProject     Role = "Project"
	RolePrice       Role = "Price"
	RoleSupplier    Role = "Supplier"
	RoleDescription Role = "Description"
	RoleStatus      Role = "Status"
)

// requiredRoles must resolve for a processing run to start.
var requiredRoles = []Role{RolePN, RoleProject}

// roleAliases lists known header spellings per role, in precedence order.
var roleAliases = map[Role][]string{
	RolePN: {
		"PN", "Part Number", "P/N", "Part No", "PartNumber",
		"Yazaki PN", "YAZAKI PN", "Yazaki Part Number", "Component PN",
	},
	RoleProject: {
		"Project", "PROJECT", "Project Name", "Program", "Program Code",
		"BOM As Filter",
	},
	RolePrice: {
		"Price", "Unit Price", "Cost", "Unit Cost",
	},
	RoleSupplier: {
		"Supplier", "Vendor", "Manufacturer", "Supplier Name",
	},
	RoleDescription: {
		"Description", "Desc", "Component Description", "Part Description",
	},
	RoleStatus: {
		"Status", "Activation Status", "ACTIVATION_STATUS", "Component Status",
	},
}

// Mapping holds the actual header resolved for each role found in a table.
type Mapping map[Role]string

// Resolve finds the header in availableColumns that plays the given role.
// Matching priority: exact alias, case-insensitive alias, normalized
// alias (separators stripped), then substring of the normalized forms.
// First match wins; the function is pure over the static alias tables.
func Resolve(role Role, availableColumns []string) (string, bool) {
	aliases := roleAliases[role]

	for _, alias := range aliases {
		for _, col := range availableColumns {
			if col == alias {
				return col, true
			}
		}
	}

	for _, alias := range aliases {
		for _, col := range availableColumns {
			if strings.EqualFold(col, alias) {
				return col, true
			}
		}
	}

	for _, alias := range aliases {
		na := normalizeHeader(alias)
		for _, col := range availableColumns {
			if normalizeHeader(col) == na {
				return col, true
			}
		}
	}

	for _, alias := range aliases {
		na := normalizeHeader(alias)
		for _, col := range availableColumns {
			nc := normalizeHeader(col)
			if strings.Contains(nc, na) || strings.Contains(na, nc) {
				return col, true
			}
		}
	}

	return "", false
}

// ResolveColumns resolves every known role against the available headers.
// Roles with no matching header are absent from the mapping.
func ResolveColumns(availableColumns []string) Mapping {
	m := make(Mapping)
	for role := range roleAliases {
		if col, ok := Resolve(role, availableColumns); ok {
			m[role] = col
		}
	}
	return m
}

// ValidateRequired checks that both required roles resolve. A failure
// here is a hard error for the run, not a warning.
func ValidateRequired(availableColumns []string) (bool, []Role) {
	var missing []Role
	for _, role := range requiredRoles {
		if _, ok := Resolve(role, availableColumns); !ok {
			missing = append(missing, role)
		}
	}
	return len(missing) == 0, missing
}

// normalizeHeader lowers the header and strips the separator characters
// that vary between exports: underscores, dashes, dots, parentheses and
// runs of whitespace.
func normalizeHeader(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', '.', '(', ')', ' ', '\t', '/':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
