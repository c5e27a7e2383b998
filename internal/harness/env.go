package harness

import (
	"lacpctl/internal/devices"
)

// Environment variable names injected into bundle entry points.
const (
	EnvDevice   = "DEVICE"
	EnvHostname = "HOSTNAME"
	EnvUsername = "USERNAME"
	EnvPassword = "PASSWORD"
)

// BuildEnv returns a fresh environment for one bundle execution: a copy of
// base plus the device-context overrides. The copy is taken per call so no
// bundle can mutate the environment a later bundle sees.
func BuildEnv(base []string, device string, creds *devices.LoginCredentials) []string {
	env := make([]string, len(base), len(base)+4)
	copy(env, base)

	if device == "" {
		return env
	}
	env = append(env, EnvDevice+"="+device)
	if creds != nil {
		env = append(env,
			EnvHostname+"="+creds.Hostname,
			EnvUsername+"="+creds.Username,
			EnvPassword+"="+creds.Password,
		)
	}
	return env
}
