package util

import (
	"github.com/denisbrodbeck/machineid"
)

// GetMachineID returns a stable per-host identifier used to salt the
// token signing key. Falls back to a fixed string when the platform
// machine id is unavailable.
// GetMachineID 返回稳定的主机标识，用于加盐令牌签名密钥
func GetMachineID() string {
	id, err := machineid.ID()
	if err != nil {
		return "unknown-machine"
	}
	return id
}
