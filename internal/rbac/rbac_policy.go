package rbac

const (
	RoleEmployee = "employee"
	RoleMaster   = "master"
	RoleDirector = "director"
	RoleAdmin    = "admin"
)

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// inheritance lists child -> parent: the child role gets all parent grants.
var inheritance = [][2]string{
	{RoleMaster, RoleEmployee},
	{RoleDirector, RoleMaster},
}

// grants is the policy table. Operators read and execute, masters plan and
// assign, directors may delete, admins may do anything.
var grants = map[string][]Permission{
	RoleEmployee: {
		{"department", "read"},
		{"techcard", "read"},
		{"techcard", "execute"},
		{"production_plan", "read"},
		{"assignment", "read_own"},
		{"assignment", "work"},
		{"task", "read"},
	},
	RoleMaster: {
		{"user", "read"},
		{"techcard", "create"},
		{"techcard", "update"},
		{"techcard", "upload"},
		{"production_plan", "create"},
		{"production_plan", "update"},
		{"assignment", "read"},
		{"assignment", "create"},
		{"assignment", "update"},
		{"assignment", "delete"},
		{"assignment", "import"},
		{"task", "create"},
		{"task", "update"},
	},
	RoleDirector: {
		{"techcard", "delete"},
		{"production_plan", "delete"},
		{"task", "delete"},
	},
	RoleAdmin: {
		{"*", "*"},
	},
}

var Roles = []string{RoleEmployee, RoleMaster, RoleDirector, RoleAdmin}

func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
