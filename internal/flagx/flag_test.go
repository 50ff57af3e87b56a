package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		valued   []string
		switches []string
		want     []string
	}{
		{
			name:   "short flag with separate value",
			args:   []string{"-c", "conf.json", "-a", "localhost"},
			valued: []string{"-c", "--config"},
			want:   []string{"-c", "conf.json"},
		},
		{
			name:   "long flag with equals",
			args:   []string{"--config=alt.json", "-a", "localhost"},
			valued: []string{"-c", "--config"},
			want:   []string{"--config=alt.json"},
		},
		{
			name:   "unknown flags ignored",
			args:   []string{"-x", "1", "--y=2", "positional"},
			valued: []string{"-c"},
			want:   []string{},
		},
		{
			name:   "flag followed by another flag keeps no value",
			args:   []string{"-c", "-notvalue"},
			valued: []string{"-c"},
			want:   []string{"-c"},
		},
		{
			name:     "switch does not swallow the next argument",
			args:     []string{"-paused", "positional", "-d", "dsn"},
			valued:   []string{"-d"},
			switches: []string{"-paused"},
			want:     []string{"-paused", "-d", "dsn"},
		},
		{
			name:     "switch with explicit value",
			args:     []string{"-paused=false", "-x"},
			switches: []string{"-paused"},
			want:     []string{"-paused=false"},
		},
		{
			name:   "repeated flag is preserved in order",
			args:   []string{"-c", "one.json", "-c", "two.json"},
			valued: []string{"-c"},
			want:   []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:   "empty args",
			args:   []string{},
			valued: []string{"-c"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.valued, tt.switches...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigFile([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config with value", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigFile([]string{"-config", "/path/long.json"}))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, ConfigFile([]string{"-x", "1", "-y", "2"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigFile([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})
}
