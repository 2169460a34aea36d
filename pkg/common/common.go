package common

import (
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
)

var idNode *snowflake.Node

func init() {
	var err error
	idNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a process-unique, time-ordered identifier.
func UUIDint64() int64 {
	return idNode.Generate().Int64()
}

// UUID returns the identifier in its string form, used for order references.
func UUID() string {
	return idNode.Generate().String()
}

// OrderReference builds a human-readable payment reference.
func OrderReference() string {
	return fmt.Sprintf("VLB-%s", UUID())
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
