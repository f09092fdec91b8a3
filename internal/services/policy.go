package services

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpEdit   Operation = "edit"
	OpDelete Operation = "delete"
)

// userAccess lists what the user role may do per entity. Admins may do
// everything; entities missing here are hidden from users.
var userAccess = map[string][]Operation{
	"clients":       {OpList, OpCreate},
	"reviews":       {OpList, OpCreate},
	"purchased":     {OpList, OpCreate},
	"rooms":         {OpList},
	"equipment":     {OpList},
	"sport_types":   {OpList},
	"subscriptions": {OpList},
	"trainers":      {OpList},
	"schedule":      {OpList},
}

// userDashboardTables are the entities linked from the user dashboard.
var userDashboardTables = []string{"clients", "reviews", "purchased"}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

func Allows(role, entity string, op Operation) bool {
	switch role {
	case RoleAdmin:
		_, ok := LookupResource(entity)
		return ok
	case RoleUser:
		for _, allowed := range userAccess[entity] {
			if allowed == op {
				return true
			}
		}
	}
	return false
}

// DashboardTables returns the entity names shown on the role's dashboard.
func DashboardTables(role string) []string {
	if role == RoleUser {
		return append([]string(nil), userDashboardTables...)
	}
	if role != RoleAdmin {
		return nil
	}
	names := make([]string, 0, len(Catalog))
	for _, resource := range Catalog {
		names = append(names, resource.Name())
	}
	return names
}
