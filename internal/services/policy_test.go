package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminMayDoEverythingOnKnownEntities(t *testing.T) {
	for _, resource := range Catalog {
		for _, op := range []Operation{OpList, OpCreate, OpEdit, OpDelete} {
			require.True(t, Allows(RoleAdmin, resource.Name(), op), "%s %s", resource.Name(), op)
		}
	}
	require.False(t, Allows(RoleAdmin, "lockers", OpList))
}

func TestUserPermissions(t *testing.T) {
	require.True(t, Allows(RoleUser, "clients", OpList))
	require.True(t, Allows(RoleUser, "clients", OpCreate))
	require.False(t, Allows(RoleUser, "clients", OpEdit))
	require.False(t, Allows(RoleUser, "clients", OpDelete))
	require.True(t, Allows(RoleUser, "reviews", OpCreate))
	require.True(t, Allows(RoleUser, "schedule", OpList))
	require.False(t, Allows(RoleUser, "schedule", OpCreate))
	require.False(t, Allows(RoleUser, "payment_types", OpList))
	require.False(t, Allows(RoleUser, "records", OpList))
}

func TestUnknownRoleIsDeniedEverything(t *testing.T) {
	require.False(t, ValidRole("guest"))
	require.False(t, Allows("guest", "clients", OpList))
	require.Nil(t, DashboardTables("guest"))
}

func TestDashboardTables(t *testing.T) {
	require.Equal(t, []string{"clients", "reviews", "purchased"}, DashboardTables(RoleUser))
	admin := DashboardTables(RoleAdmin)
	require.Len(t, admin, 11)
	require.Equal(t, "clients", admin[0])
	require.Equal(t, "records", admin[10])
}
