package io

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/model"
)

func TestConfigYAMLRepository_GetConfig(t *testing.T) {
	tests := map[string]struct {
		fs     fstest.MapFS
		path   string
		expCfg model.ClientConfig
		expErr bool
	}{
		"A full config should load successfully": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{
					Data: []byte(`endpoint: https://db.firebaseio.com
headers:
  X-Firebase-ETag: "true"
timeout: 5s
`),
				},
			},
			path: "tasks.yaml",
			expCfg: model.ClientConfig{
				Endpoint: "https://db.firebaseio.com",
				Headers:  map[string]string{"X-Firebase-ETag": "true"},
				Timeout:  5 * time.Second,
			},
		},
		"An empty config should load successfully": {
			fs: fstest.MapFS{
				"empty.yaml": &fstest.MapFile{Data: []byte("---\n")},
			},
			path:   "empty.yaml",
			expCfg: model.ClientConfig{},
		},
		"A missing file should fail": {
			fs:     fstest.MapFS{},
			path:   "missing.yaml",
			expErr: true,
		},
		"Invalid YAML should fail": {
			fs: fstest.MapFS{
				"bad.yaml": &fstest.MapFile{Data: []byte("endpoint: [\n")},
			},
			path:   "bad.yaml",
			expErr: true,
		},
		"A non HTTP endpoint should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte("endpoint: ftp://db\n")},
			},
			path:   "tasks.yaml",
			expErr: true,
		},
		"An invalid timeout should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte("timeout: soon\n")},
			},
			path:   "tasks.yaml",
			expErr: true,
		},
		"A negative timeout should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte("timeout: -1s\n")},
			},
			path:   "tasks.yaml",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewConfigYAMLRepository(test.fs)
			cfg, err := repo.GetConfig(context.Background(), test.path)
			if test.expErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expCfg, cfg)
			}
		})
	}
}
