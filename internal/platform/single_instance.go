package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"path/filepath"
)

// ErrAlreadyRunning indicates another instance already owns the data directory.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-writer lock for one data directory.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance binds a localhost port derived from the app name and data directory,
// so two processes never write the same records.
func AcquireSingleInstance(appName, dataDir string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFor(appName, dataDir))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Release frees the lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func portFor(appName, dataDir string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	if absDir, err := filepath.Abs(dataDir); err == nil {
		dataDir = absDir
	}
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	_, _ = hash.Write([]byte{0})
	_, _ = hash.Write([]byte(filepath.Clean(dataDir)))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
