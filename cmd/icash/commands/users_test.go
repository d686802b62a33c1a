package commands

import (
	"testing"

	"github.com/codelabbj/icash-admin/internal/stats"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPatch(t *testing.T) {
	t.Parallel()

	phone := "+22990000000"
	orig := mobcash.User{ID: "u-1", FirstName: "Ada", LastName: "Lovelace", Phone: &phone, IsActive: true}

	tests := []struct {
		name string
		args []string
		want mobcash.UserPatch
	}{
		{name: "nothing changed", args: nil, want: mobcash.UserPatch{}},
		{name: "same values", args: []string{"--first-name", "Ada", "--active", "--phone", phone}, want: mobcash.UserPatch{}},
		{
			name: "new name and block",
			args: []string{"--last-name", "Byron", "--blocked"},
			want: mobcash.UserPatch{LastName: ptr("Byron"), IsBlock: ptr(true)},
		},
		{
			name: "deactivate",
			args: []string{"--active=false"},
			want: mobcash.UserPatch{IsActive: ptr(false)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := newUsersUpdateCommand(&app{})
			require.NoError(t, cmd.Flags().Parse(tt.args))

			assert.Equal(t, tt.want, userPatch(cmd.Flags(), orig))
		})
	}
}

func TestUserPatch_PhoneWhenMissing(t *testing.T) {
	t.Parallel()

	cmd := newUsersUpdateCommand(&app{})
	require.NoError(t, cmd.Flags().Parse([]string{"--phone", "+22961000000"}))

	patch := userPatch(cmd.Flags(), mobcash.User{ID: "u-2"})
	require.NotNil(t, patch.Phone)
	assert.Equal(t, "+22961000000", *patch.Phone)
}

func TestBuildDashboardReport(t *testing.T) {
	t.Parallel()

	ds := &mobcash.DashboardStats{
		Summary: mobcash.StatsSummary{
			TransactionsByApp: map[string]mobcash.AppTotal{
				"melbet": {TotalAmount: 100, Count: 1},
				"1xbet":  {TotalAmount: 300, Count: 3},
			},
		},
		Volume: mobcash.VolumeTransactions{
			Evolution: mobcash.VolumeEvolution{
				Weekly: []mobcash.VolumeBucket{{Week: "2026-01-05", TypeTrans: "deposit", TotalAmount: 50, Count: 1}},
			},
		},
	}

	report, err := buildDashboardReport(ds, stats.Weekly, stats.Monthly)
	require.NoError(t, err)

	assert.Equal(t, stats.Weekly, report.VolumePeriod)
	require.Len(t, report.Volume, 1)
	assert.Equal(t, "05/01/2026", report.Volume[0].Date)
	assert.Empty(t, report.NewUsers)
	require.Len(t, report.Apps, 2)
	assert.Equal(t, "1xbet", report.Apps[0].Key)
	assert.InDelta(t, 75.0, report.Apps[0].Percent, 0.001)
}

func ptr[T any](v T) *T {
	return &v
}
