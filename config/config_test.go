package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"SERVICE_PORT", "STORE_BACKEND", "DB_HOST", "DB_PORT", "DB_NAME", "REQUEST_TIMEOUT", "CACHE_REFRESH_INTERVAL", "BROKER_ADDRESS"} {
		t.Setenv(key, "")
	}

	conf := CreateNewConfig()

	assert.Equal(t, "8080", conf.ServicePort)
	assert.Equal(t, StoreBackendMongoDB, conf.StoreBackend)
	assert.Equal(t, "localhost", conf.MongoDBConfig.DBHost)
	assert.Equal(t, "27017", conf.MongoDBConfig.DBPort)
	assert.Equal(t, "bs", conf.MongoDBConfig.DBName)
	assert.Equal(t, 5*time.Second, conf.RequestTimeout)
	assert.Equal(t, 30*time.Second, conf.CacheRefreshInterval)
	assert.Empty(t, conf.KafkaConfig.BrokerAddress)
}

func TestCreateNewConfigOverrides(t *testing.T) {
	t.Setenv("SERVICE_PORT", "9090")
	t.Setenv("STORE_BACKEND", StoreBackendMemory)
	t.Setenv("REQUEST_TIMEOUT", "250ms")
	t.Setenv("CACHE_REFRESH_INTERVAL", "not-a-duration")

	conf := CreateNewConfig()

	assert.Equal(t, "9090", conf.ServicePort)
	assert.Equal(t, StoreBackendMemory, conf.StoreBackend)
	assert.Equal(t, 250*time.Millisecond, conf.RequestTimeout)
	assert.Equal(t, 30*time.Second, conf.CacheRefreshInterval)
}
