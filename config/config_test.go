package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		HttpPort:            8080,
		StorageType:         STORAGE_TYPE_INMEM,
		SubmissionStoreType: SUBMISSION_STORE_INMEM,
		FlowTTL:             time.Hour,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	for name, mutate := range map[string]func(c *Config){
		"unknown storage":       func(c *Config) { c.StorageType = "dynamo" },
		"redis without address": func(c *Config) { c.StorageType = STORAGE_TYPE_REDIS },
		"sqlite without url":    func(c *Config) { c.SubmissionStoreType = SUBMISSION_STORE_SQLITE },
		"unknown submission":    func(c *Config) { c.SubmissionStoreType = "s3" },
		"zero port":             func(c *Config) { c.HttpPort = 0 },
		"negative ttl":          func(c *Config) { c.FlowTTL = -time.Second },
	} {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}
