package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "payout.payments", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.BrokerList())

	a, b, d, err := cfg.Fees.Values()
	require.NoError(t, err)
	assert.True(t, a.Equal(decimal.NewFromInt(10)))
	assert.True(t, b.Equal(decimal.RequireFromString("0.05")))
	assert.True(t, d.Equal(decimal.RequireFromString("0.02")))
}

func TestLoad_RejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadFee(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("FEE_B", "five percent")

	_, err := Load()
	assert.ErrorContains(t, err, "FEE_B")
}

func TestKafkaConfig_BrokerList(t *testing.T) {
	c := KafkaConfig{Brokers: "kafka-1:9092, kafka-2:9092,,"}
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.BrokerList())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=disable", c.DSN())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PAYOUT_TEST_KEY", "")
	assert.Equal(t, "fallback", GetEnv("PAYOUT_TEST_KEY", "fallback"))
	t.Setenv("PAYOUT_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("PAYOUT_TEST_KEY", "fallback"))
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
}
