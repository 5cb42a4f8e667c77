package oracle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	config "github.com/weisyn/pricing/internal/config"
	oracleconfig "github.com/weisyn/pricing/internal/config/oracle"
	eventmodule "github.com/weisyn/pricing/internal/core/infrastructure/event"
	logmodule "github.com/weisyn/pricing/internal/core/infrastructure/log"
	"github.com/weisyn/pricing/internal/core/infrastructure/metrics"
	"github.com/weisyn/pricing/internal/core/oracle/policy"
	"github.com/weisyn/pricing/internal/core/oracle/testutil"
	configif "github.com/weisyn/pricing/pkg/interfaces/config"
	eventif "github.com/weisyn/pricing/pkg/interfaces/infrastructure/event"
	oracleif "github.com/weisyn/pricing/pkg/interfaces/oracle"
	"github.com/weisyn/pricing/pkg/types"
)

type staticAppOptions struct {
	appConfig *types.AppConfig
}

func (o staticAppOptions) GetAppConfig() *types.AppConfig { return o.appConfig }

func newTestApp(t *testing.T, appConfig *types.AppConfig, targets ...interface{}) *fxtest.App {
	t.Helper()
	return fxtest.New(t,
		fx.NopLogger,
		fx.Provide(func() configif.AppOptions { return staticAppOptions{appConfig: appConfig} }),
		config.Module(),
		logmodule.Module(),
		metrics.Module(),
		eventmodule.Module(),
		Module(),
		fx.Populate(targets...),
	)
}

// TestModule_WiresPolicyWithObservers 测试模块装配与观察者挂载
func TestModule_WiresPolicyWithObservers(t *testing.T) {
	signer, err := testutil.NewP256Signer()
	require.NoError(t, err)

	appConfig := &types.AppConfig{
		Log: &types.UserLogConfig{Level: types.StringPtr("error")},
		Oracle: &types.UserOracleConfig{
			TrustedKeys: map[string]string{"fakechain": signer.PEM},
		},
		Event: &types.UserEventConfig{HistorySize: intPtr(8)},
	}

	var (
		service *policy.Service
		admit   oracleif.AdmissibilityPolicy
		bus     eventif.EventBus
	)
	app := newTestApp(t, appConfig, &service, &admit, &bus)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, service)
	assert.Same(t, service, admit)
	assert.Equal(t, uint32(21), service.Options().ActivationVersion)
	assert.Equal(t, uint64(120), service.Options().MaxFutureSkewSeconds)

	record := signer.MustSign(types.PricingRecord{
		Version:       1,
		Spot:          1_000_000_000_000,
		MovingAverage: 1_000_000_000_000,
		Timestamp:     1_700_000_000,
	})
	ctx := types.BlockContext{
		Network:                types.NetworkFakechain,
		ProtocolVersion:        21,
		BlockTimestamp:         1_700_000_000,
		PreviousBlockTimestamp: 1_699_999_000,
	}
	require.NoError(t, admit.Validate(record, ctx))

	ctx.Network = types.NetworkMainnet
	assert.Equal(t, types.RejectReasonInvalidSignature, types.RejectReasonOf(admit.Validate(record, ctx)))

	assert.Len(t, bus.GetEventHistory(eventmodule.EventTypePricingRecordAccepted), 1)
	rejected := bus.GetEventHistory(eventmodule.EventTypePricingRecordRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, types.RejectReasonInvalidSignature, rejected[0].(oracleif.Verdict).Reason)
}

// TestModule_InvalidConfigFailsStartup 测试非法配置导致装配失败
func TestModule_InvalidConfigFailsStartup(t *testing.T) {
	appConfig := &types.AppConfig{
		Oracle: &types.UserOracleConfig{
			TrustedKeys: map[string]string{"fakechain": "not a pem"},
		},
	}

	var service *policy.Service
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() configif.AppOptions { return staticAppOptions{appConfig: appConfig} }),
		config.Module(),
		logmodule.Module(),
		Module(),
		fx.Populate(&service),
	)
	assert.Error(t, app.Err())
}

// TestCheckTrustedKeys 测试装配前的受信公钥解析
func TestCheckTrustedKeys(t *testing.T) {
	p256, err := testutil.NewP256Signer()
	require.NoError(t, err)
	secp, err := testutil.NewSecp256k1Signer()
	require.NoError(t, err)

	good := oracleconfig.New(&types.UserOracleConfig{TrustedKeys: map[string]string{
		"mainnet":   p256.PEM,
		"fakechain": secp.PEM,
	}})
	assert.NoError(t, CheckTrustedKeys(good))
	assert.NoError(t, CheckTrustedKeys(oracleconfig.New(nil)))

	bad := oracleconfig.New(&types.UserOracleConfig{TrustedKeys: map[string]string{
		"mainnet":  p256.PEM,
		"testnet":  "not a pem",
		"stagenet": "   ",
	}})
	err = CheckTrustedKeys(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnusableTrustedKey))
	assert.Contains(t, err.Error(), "oracle.trusted_keys.testnet")
	assert.Contains(t, err.Error(), "oracle.trusted_keys.stagenet")
	assert.NotContains(t, err.Error(), "oracle.trusted_keys.mainnet")
}

func intPtr(v int) *int { return &v }
