package commands_test

import (
	"encoding/json"
	"testing"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const networkPage = `{
	"count": 25,
	"next": "https://api.example/mobcash/network?page=2",
	"previous": null,
	"results": [
		{"id": 1, "name": "MTN", "public_name": "MTN MoMo", "country_code": "BJ", "enable": true},
		{"id": 2, "name": "Moov", "public_name": "Moov Money", "country_code": "BJ", "enable": false}
	]
}`

const network = `{"id": 4, "name": "MTN", "public_name": "MTN MoMo", "country_code": "BJ", "deposit_api": "connect", "enable": true}`

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	res := execute(t, loadEnv(t, nil), tempConfig(t), "version", "--output", "json")
	require.NoError(t, res.err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "abc123", info["commit"])
	assert.Equal(t, constants.DefaultUserAgent, info["user_agent"])
}

func TestInvalidOutputFormat(t *testing.T) {
	t.Parallel()

	res := execute(t, loadEnv(t, nil), tempConfig(t), "version", "--output", "xml")
	require.ErrorIs(t, res.err, constants.ErrInvalidOutput)
}

func TestNetworksList_Table(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"GET /mobcash/network": networkPage})

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "networks", "list")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "MTN MoMo")
	assert.Contains(t, res.stdout, "Moov Money")
	assert.Contains(t, res.stdout, "Page 1 of 3 (25 results).")
	assert.Contains(t, res.stdout, "Use --page 2 for the next page.")
	assert.NotContains(t, res.stdout, "previous page")
}

func TestNetworksList_JSON(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"GET /mobcash/network": networkPage})

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "-o", "json", "networks", "list", "--search", "MTN")
	require.NoError(t, res.err)

	var env mobcash.Envelope[mobcash.Network]
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &env))
	assert.Equal(t, 25, env.Count)
	require.Len(t, env.Results, 2)
	assert.Equal(t, "MTN", env.Results[0].Name)
	assert.NotContains(t, res.stdout, "Page 1 of 3")
}

func TestList_Empty(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"GET /mobcash/coupon": `[]`})

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "coupons", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "No results found\n", res.stdout)
}

func TestNetworksGet_YAML(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"GET /mobcash/network/4": network})

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "-o", "yaml", "networks", "get", "4")
	require.NoError(t, res.err)

	var got mobcash.Network
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, 4, got.ID)
	assert.Equal(t, "MTN MoMo", got.PublicName)
}

func TestNetworksGet_NotFound(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, nil)

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "networks", "get", "9")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "Pas trouvé.")
}

func TestVerbose_EndpointSummary(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"GET /mobcash/network/4": network})

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "--verbose", "networks", "get", "4")
	require.NoError(t, res.err)

	assert.Contains(t, res.stderr, `level=DEBUG msg="endpoint summary"`)
	assert.Contains(t, res.stderr, `endpoint="GET /mobcash/network/:id"`)
	assert.Contains(t, res.stderr, "requests=1")
	assert.NotContains(t, res.stdout, "endpoint summary")
}

func TestDelete_RequiresForceWithoutTerminal(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"DELETE /mobcash/network/4": ""})

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "networks", "delete", "4")
	require.ErrorIs(t, res.err, constants.ErrConfirmationRequired)
	assert.Empty(t, backend.Calls())
}

func TestDelete_Force(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"DELETE /mobcash/network/4": ""})

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "networks", "delete", "4", "--force")
	require.NoError(t, res.err)
	assert.Contains(t, backend.Calls(), "DELETE /mobcash/network/4")
	assert.Empty(t, res.stdout)
	assert.NotEmpty(t, res.stderr)
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"GET /mobcash/network/4": network})

	tests := []struct {
		name string
		args []string
	}{
		{name: "no flags", args: []string{"networks", "update", "4"}},
		{name: "same value", args: []string{"networks", "update", "4", "--name", "MTN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, loadEnv(t, nil), tempConfig(t), append([]string{"--api", backend.URL}, tt.args...)...)
			require.ErrorIs(t, res.err, constants.ErrNothingToUpdate)
		})
	}

	for _, call := range backend.Calls() {
		assert.NotContains(t, call, "PATCH")
	}
}

func TestCreate_InvalidDraftSendsNothing(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, nil)

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "coupons", "create", "--code", "WELCOME")
	require.ErrorIs(t, res.err, constants.ErrCannotSubmit)
	assert.Empty(t, backend.Calls())
}

func TestCreate_InteractiveWithoutTerminal(t *testing.T) {
	t.Parallel()

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", "http://127.0.0.1:1", "networks", "create", "-i")
	require.ErrorIs(t, res.err, constants.ErrNotInteractive)
}

func TestCouponsCreate(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{
		"POST /mobcash/coupon": `{"id": 3, "code": "WELCOME", "bet_app": "1xbet", "enable": true}`,
	})

	res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "-o", "json",
		"coupons", "create", "--code", "WELCOME", "--bet-app", "1xbet")
	require.NoError(t, res.err)

	var got mobcash.Coupon
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, 3, got.ID)
	assert.Contains(t, backend.Calls(), "POST /mobcash/coupon")
}

func TestNoAPIConfigured(t *testing.T) {
	t.Parallel()

	env := loadEnv(t, nil)
	env.BaseURL = ""

	res := execute(t, env, tempConfig(t), "networks", "list")
	require.ErrorIs(t, res.err, constants.ErrNoAPIConfigured)
}

func TestConfigSetShowUnset(t *testing.T) {
	t.Parallel()

	env := loadEnv(t, nil)
	cfg := tempConfig(t)

	res := execute(t, env, cfg, "config", "set", "output", "yaml")
	require.NoError(t, res.err)

	res = execute(t, env, cfg, "config", "set", "token", "secret-token")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "secret-token")

	res = execute(t, env, cfg, "config", "show")
	require.NoError(t, res.err)

	var shown struct {
		Config struct {
			Output string `yaml:"output"`
			Token  string `yaml:"token"`
			API    string `yaml:"api"`
		} `yaml:"config"`
		ConfigFile string          `yaml:"config_file"`
		Features   map[string]bool `yaml:"features"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &shown))
	assert.Equal(t, "yaml", shown.Config.Output)
	assert.Equal(t, "***", shown.Config.Token)
	assert.Equal(t, env.BaseURL, shown.Config.API)
	assert.Equal(t, cfg, shown.ConfigFile)
	assert.True(t, shown.Features["networks"])

	res = execute(t, env, cfg, "config", "unset", "output")
	require.NoError(t, res.err)

	res = execute(t, env, cfg, "-o", "json", "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"output": "json"`)
}

func TestConfigSet_Errors(t *testing.T) {
	t.Parallel()

	env := loadEnv(t, nil)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unknown key", args: []string{"config", "set", "colour", "red"}, wantErr: constants.ErrUnknownSetting},
		{name: "bad output", args: []string{"config", "set", "output", "xml"}, wantErr: constants.ErrInvalidOutput},
		{name: "bad cache", args: []string{"config", "set", "cache", "redis"}, wantErr: mobcash.ErrUnsupportedCacheType},
		{name: "unset unknown key", args: []string{"config", "unset", "colour"}, wantErr: constants.ErrUnknownSetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, env, tempConfig(t), tt.args...)
			require.ErrorIs(t, res.err, tt.wantErr)
		})
	}
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend(t, map[string]string{"GET /mobcash/dashboard-stats": `{
		"dashboard_stats": {
			"total_users": 1200,
			"transactions_by_app": {"1xbet": {"total_amount": 30000, "count": 3}, "melbet": {"total_amount": 10000, "count": 1}}
		},
		"volume_transactions": {
			"net_volume": 5000,
			"evolution": {"monthly": [{"month": "2026-01-01", "type_trans": "deposit", "total_amount": 7000, "count": 2}]}
		},
		"user_growth": {
			"new_users": {"daily": [{"date": "2026-01-05", "count": 4}]},
			"users_by_source": [{"source": "web", "count": 3}, {"source": "mobile", "count": 1}]
		},
		"referral_system": {"activation_rate": 42.5}
	}`})

	t.Run("json report", func(t *testing.T) {
		t.Parallel()

		res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "-o", "json",
			"dashboard", "--users-period", "daily")
		require.NoError(t, res.err)

		var report struct {
			VolumePeriod string `json:"volume_period"`
			UsersPeriod  string `json:"users_period"`
			Volume       []struct {
				TotalAmount float64 `json:"total_amount"`
			} `json:"volume"`
			NewUsers []struct {
				Count int `json:"count"`
			} `json:"new_users"`
			Apps []struct {
				Key string `json:"key"`
			} `json:"apps"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
		assert.Equal(t, "monthly", report.VolumePeriod)
		assert.Equal(t, "daily", report.UsersPeriod)
		require.Len(t, report.Volume, 1)
		assert.InDelta(t, 7000, report.Volume[0].TotalAmount, 0.001)
		require.Len(t, report.NewUsers, 1)
		assert.Equal(t, 4, report.NewUsers[0].Count)
		require.Len(t, report.Apps, 2)
		assert.Equal(t, "1xbet", report.Apps[0].Key)
	})

	t.Run("table sections", func(t *testing.T) {
		t.Parallel()

		res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "dashboard")
		require.NoError(t, res.err)

		for _, section := range []string{"Summary", "Volume evolution (monthly)", "New users (monthly)", "Transactions by platform", "Users by source", "Referrals"} {
			assert.Contains(t, res.stdout, section)
		}

		assert.Contains(t, res.stdout, "JANVIER")
	})

	t.Run("invalid period", func(t *testing.T) {
		t.Parallel()

		res := execute(t, loadEnv(t, nil), tempConfig(t), "--api", backend.URL, "dashboard", "--users-period", "yearly")
		require.ErrorIs(t, res.err, constants.ErrInvalidPeriod)
	})
}
