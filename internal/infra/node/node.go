package node

import (
	"os"
	"sync"

	"github.com/google/uuid"
)

// Node describes the running hub instance.
type Node struct {
	ID         string
	Hostname   string
	Version    string
	CommitHash string
}

// Set at build time with -ldflags.
var Version = "development"
var CommitHash = "unknown"

var (
	nodeID     string
	nodeIDOnce sync.Once
)

func GetNodeInfo() *Node {
	return &Node{
		ID:         getNodeID(),
		Hostname:   hostname(),
		Version:    Version,
		CommitHash: CommitHash,
	}
}

// ClientID builds a broker client identifier that is stable for the process
// lifetime and unique across hubs sharing a broker.
func ClientID(prefix string) string {
	id := getNodeID()
	return prefix + "-" + id[:8]
}

func getNodeID() string {
	nodeIDOnce.Do(func() {
		nodeID = uuid.NewString()
	})
	return nodeID
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "localhost"
	}
	return name
}
